package kbd

import (
	"io"

	"github.com/MarognaLorenzo/MarOS/device"
	"github.com/MarognaLorenzo/MarOS/device/tty"
	"github.com/MarognaLorenzo/MarOS/kernel"
	"github.com/MarognaLorenzo/MarOS/kernel/cpu"
	"github.com/MarognaLorenzo/MarOS/kernel/hal"
	"github.com/MarognaLorenzo/MarOS/kernel/irq"
	"github.com/MarognaLorenzo/MarOS/kernel/kfmt"
)

// kbdDataPort is the PS/2 controller data port.
const kbdDataPort = 0x60

var (
	portReadByteFn = cpu.PortReadByte
	acknowledgeFn  = irq.Acknowledge
	withTTYFn      = hal.WithTTY
)

// PS2Keyboard handles keyboard interrupts by reading scancodes off the
// controller data port and forwarding the decoded key presses to the
// active terminal.
type PS2Keyboard struct {
	decoder Decoder
}

// NewPS2Keyboard creates a PS/2 keyboard driver instance.
func NewPS2Keyboard() *PS2Keyboard {
	return &PS2Keyboard{}
}

// DriverName returns the name of this driver.
func (kbd *PS2Keyboard) DriverName() string {
	return "ps2_keyboard"
}

// DriverVersion returns the version of this driver.
func (kbd *PS2Keyboard) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

// DriverInit registers the keyboard interrupt handler.
func (kbd *PS2Keyboard) DriverInit(w io.Writer) *kernel.Error {
	irq.HandleIRQ(irq.Keyboard, kbd.handleInterrupt)
	kfmt.Fprintf(w, "decoding scancodes from port 0x%x\n", kbdDataPort)

	return nil
}

// handleInterrupt services a keyboard interrupt. It always reads exactly
// one byte off the data port and acknowledges the interrupt exactly once,
// whether or not the byte completes a key press.
func (kbd *PS2Keyboard) handleInterrupt() {
	sc := portReadByteFn(kbdDataPort)

	if event, ok := kbd.decoder.Feed(sc); ok {
		withTTYFn(func(term tty.Device) {
			switch event.Key {
			case KeyLeft:
				term.MoveLeft()
			case KeyRight:
				term.MoveRight()
			case KeyUp:
				term.MoveUp()
			case KeyDown:
				term.MoveDown()
			default:
				term.WriteByte(event.Char)
			}
		})
	}

	acknowledgeFn(irq.Keyboard)
}

func probeForPS2Keyboard() device.Driver {
	return NewPS2Keyboard()
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderLast,
		Probe: probeForPS2Keyboard,
	})
}
