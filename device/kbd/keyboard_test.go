package kbd

import (
	"io"
	"testing"

	"github.com/MarognaLorenzo/MarOS/device/tty"
	"github.com/MarognaLorenzo/MarOS/device/video/console"
	"github.com/MarognaLorenzo/MarOS/kernel/cpu"
	"github.com/MarognaLorenzo/MarOS/kernel/hal"
	"github.com/MarognaLorenzo/MarOS/kernel/irq"
)

// recordingTTY captures the terminal calls made by the keyboard handler.
type recordingTTY struct {
	bytes []byte
	moves []KeyCode
}

func (r *recordingTTY) Write(p []byte) (int, error) {
	r.bytes = append(r.bytes, p...)
	return len(p), nil
}

func (r *recordingTTY) WriteByte(b byte) error {
	r.bytes = append(r.bytes, b)
	return nil
}

func (r *recordingTTY) AttachTo(console.Device) {}

func (r *recordingTTY) CursorPosition() (int, int) { return 0, 0 }

func (r *recordingTTY) MoveLeft()  { r.moves = append(r.moves, KeyLeft) }
func (r *recordingTTY) MoveRight() { r.moves = append(r.moves, KeyRight) }
func (r *recordingTTY) MoveUp()    { r.moves = append(r.moves, KeyUp) }
func (r *recordingTTY) MoveDown()  { r.moves = append(r.moves, KeyDown) }
func (r *recordingTTY) ClearAll()  {}

func restoreSeams() {
	portReadByteFn = cpu.PortReadByte
	acknowledgeFn = irq.Acknowledge
	withTTYFn = hal.WithTTY
}

func TestKeyboardInterruptHandling(t *testing.T) {
	defer restoreSeams()

	// shift+h, shift release, i, left arrow, enter release.
	scancodes := []byte{0x2a, 0x23, 0xaa, 0x17, 0xe0, 0x4b, 0x9c}

	var (
		next int
		acks int
		term recordingTTY
	)

	portReadByteFn = func(port uint16) uint8 {
		if port != kbdDataPort {
			t.Fatalf("expected reads from port 0x%x; got 0x%x", kbdDataPort, port)
		}

		sc := scancodes[next]
		next++
		return sc
	}
	acknowledgeFn = func(i irq.IRQ) {
		if i != irq.Keyboard {
			t.Fatalf("expected an ack for the keyboard line; got %d", i)
		}
		acks++
	}
	withTTYFn = func(fn func(tty.Device)) { fn(&term) }

	kbd := NewPS2Keyboard()
	if err := kbd.DriverInit(io.Discard); err != nil {
		t.Fatal(err)
	}

	for range scancodes {
		kbd.handleInterrupt()
	}

	// Every interrupt gets acknowledged exactly once, whether or not the
	// scancode completed a key press.
	if acks != len(scancodes) {
		t.Fatalf("expected %d interrupt acks; got %d", len(scancodes), acks)
	}

	if got := string(term.bytes); got != "Hi" {
		t.Fatalf("expected the terminal to receive %q; got %q", "Hi", got)
	}
	if len(term.moves) != 1 || term.moves[0] != KeyLeft {
		t.Fatalf("expected a single cursor-left move; got %v", term.moves)
	}
}

func TestTimerInterruptHandling(t *testing.T) {
	defer restoreSeams()

	var acks int
	acknowledgeFn = func(i irq.IRQ) {
		if i != irq.Timer {
			t.Fatalf("expected an ack for the timer line; got %d", i)
		}
		acks++
	}

	pit := NewPITTimer()
	if err := pit.DriverInit(io.Discard); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		pit.handleInterrupt()
	}

	if acks != 3 {
		t.Fatalf("expected 3 interrupt acks; got %d", acks)
	}
	if got := pit.TickCount(); got != 3 {
		t.Fatalf("expected a tick count of 3; got %d", got)
	}
}
