package tty

import (
	"io"

	"github.com/MarognaLorenzo/MarOS/device"
	"github.com/MarognaLorenzo/MarOS/device/video/console"
	"github.com/MarognaLorenzo/MarOS/kernel"
)

// Control bytes interpreted by Editor.WriteByte. CtrlC and CtrlV are the
// C0 codes produced by the keyboard layer when ctrl is held together with
// the corresponding letter key.
const (
	charBackspace = 0x08
	charFormFeed  = 0x0c
	charEscape    = 0x1b
	charDelete    = 0x7f
	charCtrlC     = 0x03
	charCtrlV     = 0x16
)

// Editor is a line-editing terminal on top of a console device. Text is
// kept directly in the console cells; a cell holding character 0 with the
// default attribute marks the end of a row's content and every row is
// packed so that no content follows such a cell.
//
// The cursor is rendered by recoloring the cell it rests on. Every mutating
// operation removes the cursor color before touching the grid and repaints
// it at the final position.
type Editor struct {
	cons console.Device

	width  int
	height int

	// Cursor position (0-based).
	row int
	col int

	attr       uint8
	cursorAttr uint8

	tabWidth  int
	banner    string
	clipboard string
}

// NewEditor creates a terminal with the given tab width.
func NewEditor(tabWidth int) *Editor {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	return &Editor{
		tabWidth:   tabWidth,
		banner:     "MarOS:",
		cursorAttr: console.Attr(0, 11), // black on light cyan
	}
}

// AttachTo connects the editor to a console instance, resetting the cursor
// to the top-left corner.
func (t *Editor) AttachTo(cons console.Device) {
	t.cons = cons

	w, h := cons.Dimensions(console.Characters)
	t.width, t.height = int(w), int(h)
	t.attr = console.Attr(cons.DefaultColors())

	t.row, t.col = 0, 0
	t.clearAll()
	t.paintCursor()
}

// CursorPosition returns the current cursor row and column (0-based).
func (t *Editor) CursorPosition() (row, col int) {
	return t.row, t.col
}

// SetBanner sets the text printed after a form feed clears the screen.
func (t *Editor) SetBanner(banner string) {
	t.banner = banner
}

// SetTabWidth sets the number of spaces a tab inserts on an empty row.
func (t *Editor) SetTabWidth(width int) {
	if width > 0 {
		t.tabWidth = width
	}
}

// SetColors overrides the attribute used for text and empty cells. Cells
// already carrying the previous attribute are recolored in place.
func (t *Editor) SetColors(fg, bg uint8) {
	old := t.attr
	t.attr = console.Attr(fg, bg)

	if t.cons == nil || old == t.attr {
		return
	}

	for row := 0; row < t.height; row++ {
		for col := 0; col < t.width; col++ {
			ch, attr := t.readCell(row, col)
			if attr == old {
				t.writeCell(row, col, ch, t.attr)
			}
		}
	}
}

// SetCursorColors overrides the attribute used to render the cursor.
func (t *Editor) SetCursorColors(fg, bg uint8) {
	old := t.cursorAttr
	t.cursorAttr = console.Attr(fg, bg)

	if t.cons == nil || old == t.cursorAttr {
		return
	}

	if ch, attr := t.readCell(t.row, t.col); attr == old {
		t.writeCell(t.row, t.col, ch, t.cursorAttr)
	}
}

// Write implements io.Writer.
func (t *Editor) Write(data []byte) (int, error) {
	for _, b := range data {
		if err := t.WriteByte(b); err != nil {
			return 0, err
		}
	}

	return len(data), nil
}

// WriteByte interprets a single input byte. Printable bytes are inserted at
// the cursor, shifting any following content to the right. The recognized
// control bytes are:
//
//	0x0a newline: split the current row at the cursor
//	0x08 backspace: delete the character left of the cursor, merging the
//	     row into the previous one when the cursor sits at column 0
//	0x7f delete: remove the character under the cursor
//	0x09 tab: insert spaces on an empty row, otherwise skip past the
//	     current word
//	0x1b escape: clear the screen and home the cursor
//	0x0c form feed: clear the screen and print the banner
//	0x03 ctrl-c: copy the current row's content to the clipboard
//	0x16 ctrl-v: replace the current row with the clipboard content
func (t *Editor) WriteByte(b byte) error {
	if t.cons == nil {
		return io.ErrClosedPipe
	}

	t.cleanCursor()

	switch b {
	case '\n':
		t.newLine()
	case '\t':
		t.tab()
	case charBackspace:
		t.backspace()
	case charDelete:
		t.deleteForward()
	case charEscape:
		t.clearAll()
		t.row, t.col = 0, 0
	case charFormFeed:
		t.clearAll()
		t.row, t.col = 0, 0
		t.writeString(t.banner)
		t.writeString("\n")
	case charCtrlC:
		t.copyRow()
	case charCtrlV:
		t.pasteRow()
	default:
		t.insert(b)
	}

	t.paintCursor()
	return nil
}

// MoveLeft moves the cursor one step towards the start of the text. At
// column 0 the cursor wraps to the end of the previous row's content.
func (t *Editor) MoveLeft() {
	if t.cons == nil {
		return
	}

	t.cleanCursor()
	t.row, t.col = t.step(t.row, t.col, -1)
	t.paintCursor()
}

// MoveRight moves the cursor one step towards the end of the text. At the
// end of a row's content the cursor wraps to column 0 of the next row.
func (t *Editor) MoveRight() {
	if t.cons == nil {
		return
	}

	t.cleanCursor()
	t.row, t.col = t.step(t.row, t.col, 1)
	t.paintCursor()
}

// MoveUp moves the cursor to the previous row. If that row's content ends
// before the current column, the cursor clamps to the end of the content.
func (t *Editor) MoveUp() {
	if t.cons == nil || t.row == 0 {
		return
	}

	t.cleanCursor()
	t.row--
	t.clampToContent()
	t.paintCursor()
}

// MoveDown moves the cursor to the next row. If that row's content ends
// before the current column, the cursor clamps to the end of the content.
func (t *Editor) MoveDown() {
	if t.cons == nil || t.row == t.height-1 {
		return
	}

	t.cleanCursor()
	t.row++
	t.clampToContent()
	t.paintCursor()
}

// ClearAll overwrites every console cell with the empty value. The cursor
// position is preserved.
func (t *Editor) ClearAll() {
	if t.cons == nil {
		return
	}

	t.clearAll()
	t.paintCursor()
}

// DriverName returns the name of this driver.
func (t *Editor) DriverName() string {
	return "editor"
}

// DriverVersion returns the version of this driver.
func (t *Editor) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

// DriverInit initializes this driver.
func (t *Editor) DriverInit(_ io.Writer) *kernel.Error { return nil }

// insert writes b at the cursor, first shifting the cursor cell and
// everything after it one step to the right, then advances the cursor.
func (t *Editor) insert(b byte) {
	if t.col >= t.width {
		t.newLine()
	}

	t.shiftRight()
	t.writeCell(t.row, t.col, b, t.attr)
	t.row, t.col = t.step(t.row, t.col, 1)
}

// shiftRight moves the content from the cursor to the end of the row one
// cell to the right, freeing the cursor cell. A character shifted off the
// end of a full row carries over to the start of the next row, cascading
// through following full rows. A carry off the bottom row is dropped.
func (t *Editor) shiftRight() {
	carry, hadCarry := byte(0), false
	if !t.cellIsEmpty(t.row, t.width-1) {
		carry, _ = t.readCell(t.row, t.width-1)
		hadCarry = true
	}

	for i := t.width - 1; i > t.col; i-- {
		ch, attr := t.readCell(t.row, i-1)
		t.writeCell(t.row, i, ch, attr)
	}
	t.writeEmpty(t.row, t.col)

	if hadCarry && t.row != t.height-1 {
		t.carryInto(t.row+1, carry)
	}
}

// carryInto pushes ch to the front of the given row, cascading any
// characters that fall off full rows into the rows below.
func (t *Editor) carryInto(row int, ch byte) {
	for {
		carry, hadCarry := byte(0), false
		if !t.cellIsEmpty(row, t.width-1) {
			carry, _ = t.readCell(row, t.width-1)
			hadCarry = true
		}

		for i := t.width - 1; i > 0; i-- {
			c, attr := t.readCell(row, i-1)
			t.writeCell(row, i, c, attr)
		}
		t.writeCell(row, 0, ch, t.attr)

		if !hadCarry || row == t.height-1 {
			return
		}

		row, ch = row+1, carry
	}
}

// newLine splits the current row at the cursor: the content from the cursor
// to the end of the row moves to the start of the next row and the cursor
// homes to column 0 of that row. On the bottom row the screen scrolls up
// one line instead.
func (t *Editor) newLine() {
	var suffix []byte
	for i := t.col; i < t.width; i++ {
		if t.cellIsEmpty(t.row, i) {
			break
		}

		ch, _ := t.readCell(t.row, i)
		suffix = append(suffix, ch)
		t.writeEmpty(t.row, i)
	}

	if t.row == t.height-1 {
		t.shiftLinesUp()
	} else {
		t.row++
		t.col = 0
	}

	for _, ch := range suffix {
		t.WriteByte(ch)
	}
	t.cleanCursor()
	t.col = 0
}

// backspace removes the character left of the cursor. When the cursor sits
// at column 0 of a row below the first, the row's content is re-appended to
// the end of the previous row and the cursor lands at the merge point.
func (t *Editor) backspace() {
	var (
		merged  []byte
		merging = t.col == 0 && t.row != 0
	)

	if merging {
		for i := 0; i < t.width; i++ {
			if t.cellIsEmpty(t.row, i) {
				break
			}

			ch, _ := t.readCell(t.row, i)
			merged = append(merged, ch)
		}
	}

	t.MoveLeft()

	if merging {
		t.clearRow(t.row + 1)

		joinRow, joinCol := t.row, t.col
		for _, ch := range merged {
			t.WriteByte(ch)
		}
		t.cleanCursor()
		t.row, t.col = joinRow, joinCol
	} else {
		for i := t.col; i < t.width-1; i++ {
			ch, attr := t.readCell(t.row, i+1)
			t.writeCell(t.row, i, ch, attr)
		}
	}

	t.writeEmpty(t.row, t.width-1)
}

// deleteForward removes the character under the cursor, shifting the rest
// of the row one cell to the left.
func (t *Editor) deleteForward() {
	for i := t.col; i < t.width-1; i++ {
		ch, attr := t.readCell(t.row, i+1)
		t.writeCell(t.row, i, ch, attr)
	}

	t.writeEmpty(t.row, t.width-1)
}

// tab inserts spaces at the start of an empty row; anywhere else it moves
// the cursor right until it rests on a space or empty cell.
func (t *Editor) tab() {
	if t.col == 0 && t.charAt(t.row, 0) == 0 {
		for i := 0; i < t.tabWidth; i++ {
			t.WriteByte(' ')
		}
		return
	}

	for steps := 0; steps < t.width; steps++ {
		if ch := t.charAt(t.row, t.col); ch == ' ' || ch == 0 {
			return
		}

		t.row, t.col = t.step(t.row, t.col, 1)
	}
}

// copyRow copies the current row's content to the clipboard.
func (t *Editor) copyRow() {
	var content []byte
	for i := 0; i < t.width; i++ {
		if t.cellIsEmpty(t.row, i) {
			break
		}

		ch, _ := t.readCell(t.row, i)
		content = append(content, ch)
	}

	t.clipboard = string(content)
}

// pasteRow replaces the current row's content with the clipboard, leaving
// the cursor after the pasted text.
func (t *Editor) pasteRow() {
	t.clearRow(t.row)
	t.col = 0
	t.writeString(t.clipboard)
}

// step returns the position reached after moving shift steps through the
// text, negative values stepping left and positive values stepping right.
// Stepping left from column 0 lands on the end of the previous row's
// content; stepping right off a row's content lands on column 0 of the
// next row. Both directions clamp at the console edges.
func (t *Editor) step(row, col, shift int) (int, int) {
	for ; shift < 0; shift++ {
		if col != 0 {
			col--
			continue
		}

		if row != 0 {
			row--
		}

		// Scan back to the last character of the previous row, then
		// step past it so an insert appends rather than overwrites.
		col = t.width - 1
		for t.charAt(row, col) == 0 && col != 0 {
			col--
		}
		if !t.cellIsEmpty(row, col) && col != t.width-1 {
			col++
		}
	}

	for ; shift > 0; shift-- {
		if col == t.width-1 || t.cellIsEmpty(row, col) {
			col = 0
			if row != t.height-1 {
				row++
			}
		} else {
			col++
		}
	}

	return row, col
}

// clampToContent pulls the cursor column back to the end of the current
// row's content.
func (t *Editor) clampToContent() {
	for t.col > 0 && t.cellIsEmpty(t.row, t.col) {
		t.col--
	}
}

func (t *Editor) writeString(s string) {
	for i := 0; i < len(s); i++ {
		t.WriteByte(s[i])
	}
}

// paintCursor recolors the cell under the cursor with the cursor attribute.
func (t *Editor) paintCursor() {
	ch, _ := t.readCell(t.row, t.col)
	t.writeCell(t.row, t.col, ch, t.cursorAttr)
}

// cleanCursor restores the normal attribute on the cell under the cursor.
func (t *Editor) cleanCursor() {
	ch, attr := t.readCell(t.row, t.col)
	if attr == t.cursorAttr {
		t.writeCell(t.row, t.col, ch, t.attr)
	}
}

// shiftLinesUp scrolls the console contents up one line, clearing the
// bottom row and homing the cursor column.
func (t *Editor) shiftLinesUp() {
	t.cons.Scroll(console.ScrollDirUp, 1)
	t.cons.Fill(1, uint32(t.height), uint32(t.width), 1, t.attr)
	t.col = 0
}

func (t *Editor) clearRow(row int) {
	t.cons.Fill(1, uint32(row+1), uint32(t.width), 1, t.attr)
}

func (t *Editor) clearAll() {
	t.cons.Fill(1, 1, uint32(t.width), uint32(t.height), t.attr)
}

// readCell and writeCell translate the editor's 0-based coordinates to the
// console's 1-based ones.
func (t *Editor) readCell(row, col int) (byte, uint8) {
	return t.cons.Read(uint32(col+1), uint32(row+1))
}

func (t *Editor) writeCell(row, col int, ch byte, attr uint8) {
	t.cons.Write(ch, attr, uint32(col+1), uint32(row+1))
}

func (t *Editor) writeEmpty(row, col int) {
	t.writeCell(row, col, 0, t.attr)
}

func (t *Editor) charAt(row, col int) byte {
	ch, _ := t.readCell(row, col)
	return ch
}

// cellIsEmpty reports whether a cell holds the empty value: character 0
// with the normal attribute. A cell recolored by the cursor is not empty.
func (t *Editor) cellIsEmpty(row, col int) bool {
	ch, attr := t.readCell(row, col)
	return ch == 0 && attr == t.attr
}

var _ Device = (*Editor)(nil)

func probeForEditor() device.Driver {
	return NewEditor(DefaultTabWidth)
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderNormal,
		Probe: probeForEditor,
	})
}
