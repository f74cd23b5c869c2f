package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/MarognaLorenzo/MarOS/device/kbd"
)

// Reverse lookup tables mapping characters back to scancode set 1 make
// codes, built from the keyboard layout maps.
var (
	normalCodes  = map[byte]byte{}
	shiftedCodes = map[byte]byte{}
)

func init() {
	for code, ch := range kbd.US104NormalMap {
		if ch != 0 {
			if _, ok := normalCodes[ch]; !ok {
				normalCodes[ch] = byte(code)
			}
		}
	}
	for code, ch := range kbd.US104ShiftedMap {
		if ch != 0 {
			if _, ok := shiftedCodes[ch]; !ok {
				shiftedCodes[ch] = byte(code)
			}
		}
	}
}

func press(code byte) []byte {
	return []byte{code, code | 0x80}
}

func pressExtended(code byte) []byte {
	return []byte{0xe0, code, 0xe0, code | 0x80}
}

func pressShifted(code byte) []byte {
	return []byte{0x2a, code, code | 0x80, 0xaa}
}

func pressWithCtrl(code byte) []byte {
	return []byte{0x1d, code, code | 0x80, 0x9d}
}

// ScancodesFor translates a host key event into the scancode set 1 byte
// sequence (make and break codes) an AT keyboard would emit for the same
// key press. Keys with no scancode equivalent return nil.
func ScancodesFor(ev *tcell.EventKey) []byte {
	switch ev.Key() {
	case tcell.KeyRune:
		return scancodesForRune(ev.Rune())
	case tcell.KeyEnter:
		return press(0x1c)
	case tcell.KeyTab:
		return press(0x0f)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return press(0x0e)
	case tcell.KeyEscape:
		return press(0x01)
	case tcell.KeyDelete:
		return pressExtended(0x53)
	case tcell.KeyUp:
		return pressExtended(0x48)
	case tcell.KeyDown:
		return pressExtended(0x50)
	case tcell.KeyLeft:
		return pressExtended(0x4b)
	case tcell.KeyRight:
		return pressExtended(0x4d)
	}

	// The remaining C0 keys arrive as ctrl plus a letter.
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		letter := byte('a' + k - tcell.KeyCtrlA)
		if code, ok := normalCodes[letter]; ok {
			return pressWithCtrl(code)
		}
	}

	return nil
}

func scancodesForRune(r rune) []byte {
	if r < 0 || r > 127 {
		return nil
	}

	ch := byte(r)
	if code, ok := normalCodes[ch]; ok {
		return press(code)
	}
	if code, ok := shiftedCodes[ch]; ok {
		return pressShifted(code)
	}

	return nil
}
