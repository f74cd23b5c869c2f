package kbd

// Scancode set 1 constants used by the decoder. A break code is the make
// code with the top bit set; 0xe0 prefixes the extended codes.
const (
	scExtendedPrefix = 0xe0
	scBreakBit       = 0x80

	scEscape    = 0x01
	scBackspace = 0x0e
	scTab       = 0x0f
	scEnter     = 0x1c
	scCtrl      = 0x1d
	scLShift    = 0x2a
	scRShift    = 0x36
	scAlt       = 0x38
	scCapsLock  = 0x3a

	// Extended (0xe0-prefixed) make codes.
	scUpArrow    = 0x48
	scLeftArrow  = 0x4b
	scRightArrow = 0x4d
	scDownArrow  = 0x50
	scDelete     = 0x53
)

// KeyCode identifies the non-character keys reported by the decoder.
type KeyCode uint8

// The supported list of non-character keys.
const (
	KeyNone KeyCode = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// Event describes a decoded key press. Exactly one of Char and Key is set.
type Event struct {
	Char byte
	Key  KeyCode
}

// Decoder converts a stream of scancode set 1 bytes into key press events,
// tracking the modifier and lock state across calls. The zero value is
// ready to use.
type Decoder struct {
	extended bool

	lshift   bool
	rshift   bool
	ctrl     bool
	alt      bool
	capsLock bool
}

// Feed consumes a single scancode byte. It returns a key press event and
// true when the byte completes a press that maps to a character or movement
// key; prefix bytes, break codes and modifier presses return false.
func (d *Decoder) Feed(sc byte) (Event, bool) {
	if sc == scExtendedPrefix {
		d.extended = true
		return Event{}, false
	}

	extended := d.extended
	d.extended = false

	code := sc &^ byte(scBreakBit)
	released := sc&scBreakBit != 0

	if extended {
		return d.feedExtended(code, released)
	}

	switch code {
	case scLShift:
		d.lshift = !released
		return Event{}, false
	case scRShift:
		d.rshift = !released
		return Event{}, false
	case scCtrl:
		d.ctrl = !released
		return Event{}, false
	case scAlt:
		d.alt = !released
		return Event{}, false
	case scCapsLock:
		if !released {
			d.capsLock = !d.capsLock
		}
		return Event{}, false
	}

	if released {
		return Event{}, false
	}

	switch code {
	case scEscape:
		return Event{Char: 0x1b}, true
	case scBackspace:
		return Event{Char: 0x08}, true
	case scTab:
		return Event{Char: '\t'}, true
	case scEnter:
		return Event{Char: '\n'}, true
	}

	ch := US104NormalMap[code]
	if ch == 0 {
		return Event{}, false
	}

	isLetter := ch >= 'a' && ch <= 'z'

	// Holding ctrl with a letter emits the matching C0 control code
	// (ctrl-c is 0x03, ctrl-v is 0x16 and so on).
	if d.ctrl && isLetter {
		return Event{Char: ch & 0x1f}, true
	}

	shifted := d.lshift || d.rshift
	if isLetter {
		// Caps lock flips the letter case picked by shift.
		if shifted != d.capsLock {
			ch = US104ShiftedMap[code]
		}
	} else if shifted {
		ch = US104ShiftedMap[code]
	}

	return Event{Char: ch}, true
}

func (d *Decoder) feedExtended(code byte, released bool) (Event, bool) {
	// The right-hand ctrl and alt keys share the base make codes behind
	// the extended prefix.
	switch code {
	case scCtrl:
		d.ctrl = !released
		return Event{}, false
	case scAlt:
		d.alt = !released
		return Event{}, false
	}

	if released {
		return Event{}, false
	}

	switch code {
	case scUpArrow:
		return Event{Key: KeyUp}, true
	case scDownArrow:
		return Event{Key: KeyDown}, true
	case scLeftArrow:
		return Event{Key: KeyLeft}, true
	case scRightArrow:
		return Event{Key: KeyRight}, true
	case scDelete:
		return Event{Char: 0x7f}, true
	}

	return Event{}, false
}
