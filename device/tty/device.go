package tty

import (
	"io"

	"github.com/MarognaLorenzo/MarOS/device/video/console"
)

// DefaultTabWidth defines the number of spaces inserted by a tab at the
// start of an empty line.
const DefaultTabWidth = 4

// Device is implemented by objects that can be used as a terminal device.
// Writes interpret the control bytes documented on Editor.WriteByte; the
// cursor movement methods never mutate the terminal contents.
type Device interface {
	io.Writer
	io.ByteWriter

	// AttachTo connects a TTY to a console instance.
	AttachTo(console.Device)

	// CursorPosition returns the current cursor row and column. Both
	// coordinates are 0-based (top-left corner has coordinates 0,0).
	CursorPosition() (row, col int)

	// MoveLeft moves the cursor one step towards the start of the text,
	// wrapping to the end of the previous row's content at column 0.
	MoveLeft()

	// MoveRight moves the cursor one step towards the end of the text,
	// wrapping to the start of the next row at the end of content.
	MoveRight()

	// MoveUp moves the cursor to the previous row, clamping the column to
	// that row's content.
	MoveUp()

	// MoveDown moves the cursor to the next row, clamping the column to
	// that row's content.
	MoveDown()

	// ClearAll overwrites every console cell with the empty value.
	ClearAll()
}
