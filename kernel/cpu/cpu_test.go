package cpu

import "testing"

func TestInterruptFlag(t *testing.T) {
	defer DisableInterrupts()

	DisableInterrupts()
	if InterruptsEnabled() {
		t.Fatal("expected interrupts to be disabled")
	}

	EnableInterrupts()
	if !InterruptsEnabled() {
		t.Fatal("expected interrupts to be enabled")
	}
}

func TestEnableHook(t *testing.T) {
	defer func() {
		enableHookFn = nil
		DisableInterrupts()
	}()

	var hookCalls int
	InterruptsEnableHook(func() { hookCalls++ })

	EnableInterrupts()
	EnableInterrupts()
	DisableInterrupts()

	if hookCalls != 2 {
		t.Fatalf("expected enable hook to be invoked 2 times; got %d", hookCalls)
	}
}

func TestPortIO(t *testing.T) {
	defer func() {
		delete(portReadFns, 0x60)
		delete(portWriteFns, 0x3c8)
	}()

	HandlePortRead(0x60, func() uint8 { return 0xfe })
	if got := PortReadByte(0x60); got != 0xfe {
		t.Fatalf("expected port 0x60 to read 0xfe; got 0x%x", got)
	}

	var lastWrite uint8
	HandlePortWrite(0x3c8, func(v uint8) { lastWrite = v })
	PortWriteByte(0x3c8, 0x0b)
	if lastWrite != 0x0b {
		t.Fatalf("expected port 0x3c8 write to reach the device model; got 0x%x", lastWrite)
	}
}

func TestUnmappedPorts(t *testing.T) {
	if got := PortReadByte(0x1234); got != 0 {
		t.Fatalf("expected unmapped port read to float to zero; got 0x%x", got)
	}

	// Writes to unmapped ports must not panic.
	PortWriteByte(0x1234, 0xff)
}
