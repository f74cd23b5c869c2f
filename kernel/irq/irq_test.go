package irq

import (
	"testing"

	"github.com/MarognaLorenzo/MarOS/kernel/cpu"
)

func TestDispatchOrder(t *testing.T) {
	defer cpu.DisableInterrupts()

	c := NewController()

	var got []IRQ
	c.HandleIRQ(Timer, func() {
		got = append(got, Timer)
		c.Acknowledge(Timer)
	})
	c.HandleIRQ(Keyboard, func() {
		got = append(got, Keyboard)
		c.Acknowledge(Keyboard)
	})

	cpu.EnableInterrupts()
	c.Raise(Keyboard)
	c.Raise(Timer)
	c.Raise(Keyboard)

	exp := []IRQ{Keyboard, Timer, Keyboard}
	if len(got) != len(exp) {
		t.Fatalf("expected %d dispatches; got %d", len(exp), len(got))
	}
	for i, line := range exp {
		if got[i] != line {
			t.Errorf("expected dispatch %d to be line %d; got %d", i, line, got[i])
		}
	}
}

func TestMaskedInterruptsStayPending(t *testing.T) {
	defer cpu.DisableInterrupts()

	c := NewController()

	var dispatches int
	c.HandleIRQ(Keyboard, func() {
		dispatches++
		c.Acknowledge(Keyboard)
	})

	cpu.DisableInterrupts()
	c.Raise(Keyboard)
	c.Raise(Keyboard)

	if dispatches != 0 {
		t.Fatalf("expected no dispatches while interrupts are masked; got %d", dispatches)
	}

	cpu.EnableInterrupts()
	c.Service()

	if dispatches != 2 {
		t.Fatalf("expected both pending interrupts to be delivered on enable; got %d", dispatches)
	}
}

func TestHandlersRunMasked(t *testing.T) {
	defer cpu.DisableInterrupts()

	c := NewController()

	var maskedDuringHandler bool
	c.HandleIRQ(Timer, func() {
		maskedDuringHandler = !cpu.InterruptsEnabled()
		c.Acknowledge(Timer)
	})

	cpu.EnableInterrupts()
	c.Raise(Timer)

	if !maskedDuringHandler {
		t.Fatal("expected handler to run with interrupts masked")
	}
	if !cpu.InterruptsEnabled() {
		t.Fatal("expected interrupt flag to be restored after the handler returned")
	}
}

func TestUnacknowledgedLineBlocksDispatch(t *testing.T) {
	defer cpu.DisableInterrupts()

	c := NewController()

	var timerDispatches, kbdDispatches int
	c.HandleIRQ(Timer, func() {
		timerDispatches++
		// Deliberately no acknowledge.
	})
	c.HandleIRQ(Keyboard, func() {
		kbdDispatches++
		c.Acknowledge(Keyboard)
	})

	cpu.EnableInterrupts()
	c.Raise(Timer)
	c.Raise(Keyboard)

	if timerDispatches != 1 || kbdDispatches != 0 {
		t.Fatalf("expected dispatching to stall on the unacknowledged line; got timer=%d kbd=%d", timerDispatches, kbdDispatches)
	}

	// Acknowledging the wrong line must not unblock anything.
	c.Acknowledge(Keyboard)
	if kbdDispatches != 0 {
		t.Fatalf("expected acknowledge of an idle line to be a no-op; got kbd=%d", kbdDispatches)
	}

	c.Acknowledge(Timer)
	if kbdDispatches != 1 {
		t.Fatalf("expected pending interrupt to be delivered after acknowledge; got kbd=%d", kbdDispatches)
	}
}

func TestNonReentrantSameLine(t *testing.T) {
	defer cpu.DisableInterrupts()

	c := NewController()

	var depth, maxDepth, dispatches int
	c.HandleIRQ(Keyboard, func() {
		depth++
		if depth > maxDepth {
			maxDepth = depth
		}
		dispatches++
		if dispatches == 1 {
			// Re-raise our own line mid-handler; it must not nest.
			c.Raise(Keyboard)
		}
		c.Acknowledge(Keyboard)
		depth--
	})

	cpu.EnableInterrupts()
	c.Raise(Keyboard)

	if maxDepth != 1 {
		t.Fatalf("expected handler not to re-enter itself; observed nesting depth %d", maxDepth)
	}
	if dispatches != 2 {
		t.Fatalf("expected the re-raised interrupt to be delivered after acknowledge; got %d dispatches", dispatches)
	}
}
