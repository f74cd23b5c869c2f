package console

import (
	"image/color"
	"io"

	"github.com/MarognaLorenzo/MarOS/device"
	"github.com/MarognaLorenzo/MarOS/kernel"
	"github.com/MarognaLorenzo/MarOS/kernel/cpu"
	"github.com/MarognaLorenzo/MarOS/kernel/kfmt"
)

// DefaultWidth and DefaultHeight describe the extent of the standard VGA
// mode 0x3 text console.
const (
	DefaultWidth  = 80
	DefaultHeight = 25
)

var portWriteByteFn = cpu.PortWriteByte

// Attr packs a foreground and background color index into a VGA attribute
// byte (4 bits for each).
func Attr(fg, bg uint8) uint8 {
	return bg<<4 | fg
}

// VgaTextConsole implements an EGA-compatible 80x25 text console using VGA
// mode 0x3. The console supports the default 16 EGA colors which can be
// overridden using the SetPaletteColor method.
//
// Each character in the console framebuffer is represented using two bytes,
// a byte for the character ASCII code and an attribute byte that encodes the
// foreground and background colors (4 bits for each). A cell that has never
// been written holds character 0 with the default attribute and acts as the
// end-of-line sentinel for the terminal layer above.
type VgaTextConsole struct {
	width  uint32
	height uint32

	fb []uint16

	palette   color.Palette
	defaultFg uint8
	defaultBg uint8
}

// NewVgaTextConsole creates a new vga text console with the given extent.
func NewVgaTextConsole(columns, rows uint32) *VgaTextConsole {
	return &VgaTextConsole{
		width:  columns,
		height: rows,
		palette: color.Palette{
			color.RGBA{R: 0, G: 0, B: 1},       /* black */
			color.RGBA{R: 0, G: 0, B: 128},     /* blue */
			color.RGBA{R: 0, G: 128, B: 1},     /* green */
			color.RGBA{R: 0, G: 128, B: 128},   /* cyan */
			color.RGBA{R: 128, G: 0, B: 1},     /* red */
			color.RGBA{R: 128, G: 0, B: 128},   /* magenta */
			color.RGBA{R: 64, G: 64, B: 1},     /* brown */
			color.RGBA{R: 128, G: 128, B: 128}, /* light gray */
			color.RGBA{R: 64, G: 64, B: 64},    /* dark gray */
			color.RGBA{R: 0, G: 0, B: 255},     /* light blue */
			color.RGBA{R: 0, G: 255, B: 1},     /* light green */
			color.RGBA{R: 0, G: 255, B: 255},   /* light cyan */
			color.RGBA{R: 255, G: 0, B: 1},     /* light red */
			color.RGBA{R: 255, G: 0, B: 255},   /* pink */
			color.RGBA{R: 255, G: 255, B: 1},   /* yellow */
			color.RGBA{R: 255, G: 255, B: 255}, /* white */
		},
		// white text on black background
		defaultFg: 15,
		defaultBg: 0,
	}
}

// Dimensions returns the console width and height in the specified dimension.
func (cons *VgaTextConsole) Dimensions(dim Dimension) (uint32, uint32) {
	switch dim {
	case Characters:
		return cons.width, cons.height
	default:
		return cons.width * 8, cons.height * 16
	}
}

// DefaultColors returns the default foreground and background colors
// used by this console.
func (cons *VgaTextConsole) DefaultColors() (fg uint8, bg uint8) {
	return cons.defaultFg, cons.defaultBg
}

// Read returns the character and attribute stored at the specified location.
// Both x and y coordinates are 1-based. Out-of-range reads return the empty
// cell value.
func (cons *VgaTextConsole) Read(x, y uint32) (byte, uint8) {
	if x < 1 || x > cons.width || y < 1 || y > cons.height {
		return 0, Attr(cons.defaultFg, cons.defaultBg)
	}

	cell := cons.fb[((y-1)*cons.width)+(x-1)]
	return byte(cell), uint8(cell >> 8)
}

// Write a char with the given attribute to the specified location. Both x and
// y coordinates are 1-based. Out-of-range writes are dropped.
func (cons *VgaTextConsole) Write(ch byte, attr uint8, x, y uint32) {
	if x < 1 || x > cons.width || y < 1 || y > cons.height {
		return
	}

	cons.fb[((y-1)*cons.width)+(x-1)] = (uint16(attr) << 8) | uint16(ch)
}

// Fill sets the contents of the specified rectangular region to empty cells
// carrying the requested attribute. Both x and y coordinates are 1-based.
func (cons *VgaTextConsole) Fill(x, y, width, height uint32, attr uint8) {
	var (
		clr                  = uint16(attr) << 8
		rowOffset, colOffset uint32
	)

	// clip rectangle
	if x == 0 {
		x = 1
	} else if x >= cons.width {
		x = cons.width
	}

	if y == 0 {
		y = 1
	} else if y >= cons.height {
		y = cons.height
	}

	if x+width-1 > cons.width {
		width = cons.width - x + 1
	}

	if y+height-1 > cons.height {
		height = cons.height - y + 1
	}

	rowOffset = ((y - 1) * cons.width) + (x - 1)
	for ; height > 0; height, rowOffset = height-1, rowOffset+cons.width {
		for colOffset = rowOffset; colOffset < rowOffset+width; colOffset++ {
			cons.fb[colOffset] = clr
		}
	}
}

// Scroll the console contents to the specified direction. The caller
// is responsible for updating (e.g. clear or replace) the contents of
// the region that was scrolled.
func (cons *VgaTextConsole) Scroll(dir ScrollDir, lines uint32) {
	if lines == 0 || lines > cons.height {
		return
	}

	var i uint32
	offset := lines * cons.width

	switch dir {
	case ScrollDirUp:
		for ; i < (cons.height-lines)*cons.width; i++ {
			cons.fb[i] = cons.fb[i+offset]
		}
	case ScrollDirDown:
		for i = cons.height*cons.width - 1; i >= lines*cons.width; i-- {
			cons.fb[i] = cons.fb[i-offset]
		}
	}
}

// Palette returns the active color palette for this console.
func (cons *VgaTextConsole) Palette() color.Palette {
	return cons.palette
}

// SetPaletteColor updates the color definition for the specified palette
// index. Passing a color index greater than the number of supported colors
// is a no-op.
func (cons *VgaTextConsole) SetPaletteColor(index uint8, rgba color.RGBA) {
	if index >= uint8(len(cons.palette)) {
		return
	}

	cons.palette[index] = rgba

	// Load the palette entry to the DAC. In this mode, colors are
	// specified using 6-bits per component, so the RGB values need to be
	// converted to the 0-63 range.
	portWriteByteFn(0x3c8, index)
	portWriteByteFn(0x3c9, rgba.R>>2)
	portWriteByteFn(0x3c9, rgba.G>>2)
	portWriteByteFn(0x3c9, rgba.B>>2)
}

// DriverName returns the name of this driver.
func (cons *VgaTextConsole) DriverName() string {
	return "vga_text_console"
}

// DriverVersion returns the version of this driver.
func (cons *VgaTextConsole) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

// DriverInit initializes this driver.
func (cons *VgaTextConsole) DriverInit(w io.Writer) *kernel.Error {
	cons.fb = make([]uint16, cons.width*cons.height)
	cons.Fill(1, 1, cons.width, cons.height, Attr(cons.defaultFg, cons.defaultBg))

	kfmt.Fprintf(w, "allocated %dx%d text-mode framebuffer\n", cons.width, cons.height)

	return nil
}

// probeForVgaTextConsole attaches the emulated vga text console.
func probeForVgaTextConsole() device.Driver {
	return NewVgaTextConsole(DefaultWidth, DefaultHeight)
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderEarly,
		Probe: probeForVgaTextConsole,
	})
}
