package kbd

import (
	"io"
	"sync/atomic"

	"github.com/MarognaLorenzo/MarOS/device"
	"github.com/MarognaLorenzo/MarOS/kernel"
	"github.com/MarognaLorenzo/MarOS/kernel/irq"
	"github.com/MarognaLorenzo/MarOS/kernel/kfmt"
)

// PITTimer counts periodic timer interrupts. The console pipeline has no
// time-based behavior, so the handler's only job is to acknowledge the
// interrupt and keep the tick count.
type PITTimer struct {
	ticks uint64
}

// NewPITTimer creates a timer driver instance.
func NewPITTimer() *PITTimer {
	return &PITTimer{}
}

// DriverName returns the name of this driver.
func (pit *PITTimer) DriverName() string {
	return "pit_timer"
}

// DriverVersion returns the version of this driver.
func (pit *PITTimer) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

// DriverInit registers the timer interrupt handler.
func (pit *PITTimer) DriverInit(w io.Writer) *kernel.Error {
	irq.HandleIRQ(irq.Timer, pit.handleInterrupt)
	kfmt.Fprintf(w, "counting timer ticks\n")

	return nil
}

// TickCount returns the number of timer interrupts serviced so far.
func (pit *PITTimer) TickCount() uint64 {
	return atomic.LoadUint64(&pit.ticks)
}

func (pit *PITTimer) handleInterrupt() {
	atomic.AddUint64(&pit.ticks, 1)
	acknowledgeFn(irq.Timer)
}

func probeForPITTimer() device.Driver {
	return NewPITTimer()
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderLast,
		Probe: probeForPITTimer,
	})
}
