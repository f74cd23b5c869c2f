package console

import "image/color"

// ScrollDir defines a scroll direction.
type ScrollDir uint8

// The supported list of scroll directions for the console Scroll() calls.
const (
	ScrollDirUp ScrollDir = iota
	ScrollDirDown
)

// Dimension defines the types of dimensions that can be queried off a device.
type Dimension uint8

const (
	// Characters describes the number of character cells in the console.
	Characters Dimension = iota

	// Pixels describes the number of pixels in the console framebuffer.
	Pixels
)

// The Device interface is implemented by objects that can function as system
// consoles. A console is a fixed-size matrix of character cells; each cell
// pairs an ASCII code with an attribute byte that packs the foreground color
// in its low nibble and the background color in its high nibble.
type Device interface {
	// Dimensions returns the width and height of the console using a
	// particular dimension.
	Dimensions(Dimension) (uint32, uint32)

	// DefaultColors returns the default foreground and background colors
	// used by this console.
	DefaultColors() (fg, bg uint8)

	// Read returns the character and attribute stored at the specified
	// location. Both x and y coordinates are 1-based (top-left corner has
	// coordinates 1,1). Reads outside the console extent return the empty
	// cell value.
	Read(x, y uint32) (ch byte, attr uint8)

	// Write a char with the given attribute to the specified location.
	// Both x and y coordinates are 1-based (top-left corner has
	// coordinates 1,1). Writes outside the console extent are dropped.
	Write(ch byte, attr uint8, x, y uint32)

	// Fill sets the contents of the specified rectangular region to empty
	// cells carrying the requested attribute. Both x and y coordinates are
	// 1-based (top-left corner has coordinates 1,1).
	Fill(x, y, width, height uint32, attr uint8)

	// Scroll the console contents to the specified direction. The caller
	// is responsible for updating (e.g. clear or replace) the contents of
	// the region that was scrolled.
	Scroll(dir ScrollDir, lines uint32)

	// Palette returns the active color palette for this console.
	Palette() color.Palette

	// SetPaletteColor updates the color definition for the specified
	// palette index. Passing a color index greater than the number of
	// supported colors should be a no-op.
	SetPaletteColor(uint8, color.RGBA)
}
