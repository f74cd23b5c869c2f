// Package cpu models the execution core the console subsystem runs on: the
// interrupt-enable flag and the port-mapped I/O bus. The machine is emulated
// in-process, so the primitives that a real kernel implements with CLI/STI and
// IN/OUT instructions are implemented here over the host runtime instead.
package cpu

import "sync/atomic"

var (
	// intFlag mirrors the CPU interrupt-enable flag. Interrupts start
	// masked; the hal enables them once every handler is installed.
	intFlag uint32

	// enableHookFn is invoked every time interrupts transition to the
	// enabled state. The interrupt controller registers itself here so
	// that interrupts raised while masked get delivered on enable.
	enableHookFn func()

	portReadFns  = make(map[uint16]func() uint8)
	portWriteFns = make(map[uint16]func(uint8))
)

// EnableInterrupts enables interrupt handling.
func EnableInterrupts() {
	atomic.StoreUint32(&intFlag, 1)
	if fn := enableHookFn; fn != nil {
		fn()
	}
}

// DisableInterrupts disables interrupt handling.
func DisableInterrupts() {
	atomic.StoreUint32(&intFlag, 0)
}

// InterruptsEnabled returns the state of the interrupt-enable flag.
func InterruptsEnabled() bool {
	return atomic.LoadUint32(&intFlag) == 1
}

// InterruptsEnableHook registers fn to run whenever EnableInterrupts is
// called. Only one hook is supported; the interrupt controller owns it.
func InterruptsEnableHook(fn func()) {
	enableHookFn = fn
}

// HandlePortRead registers fn as the device model backing byte reads from the
// given I/O port. Registration must happen before interrupts are enabled.
func HandlePortRead(port uint16, fn func() uint8) {
	portReadFns[port] = fn
}

// HandlePortWrite registers fn as the device model backing byte writes to the
// given I/O port. Registration must happen before interrupts are enabled.
func HandlePortWrite(port uint16, fn func(uint8)) {
	portWriteFns[port] = fn
}

// PortReadByte reads a uint8 value from the requested port. Reads from a port
// with no attached device float to zero.
func PortReadByte(port uint16) uint8 {
	if fn := portReadFns[port]; fn != nil {
		return fn()
	}
	return 0
}

// PortWriteByte writes a uint8 value to the requested port. Writes to a port
// with no attached device are dropped.
func PortWriteByte(port uint16, val uint8) {
	if fn := portWriteFns[port]; fn != nil {
		fn(val)
	}
}
