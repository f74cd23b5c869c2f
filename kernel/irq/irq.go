// Package irq implements the interrupt controller for the emulated machine:
// handler registration, strict FIFO delivery and end-of-interrupt accounting.
//
// Hardware interrupt lines are remapped past the CPU exception range, so the
// timer and keyboard lines live at vector base 32 and 33 respectively.
package irq

import (
	"sync"

	"github.com/MarognaLorenzo/MarOS/kernel/cpu"
)

// IRQ describes a hardware interrupt request line number.
type IRQ uint8

// VectorBase is the vector offset where hardware interrupt lines are mapped.
const VectorBase = 32

const (
	// Timer is the programmable interval timer line (base+0).
	Timer = IRQ(VectorBase)

	// Keyboard is the PS/2 keyboard controller line (base+1).
	Keyboard = IRQ(VectorBase + 1)
)

// numVectors bounds the vector space addressable by an IRQ value.
const numVectors = 256

// Handler is a function invoked when a hardware interrupt is dispatched.
// Handlers run to completion with interrupts masked and must acknowledge
// their own line exactly once before returning.
type Handler func()

// Controller models an interrupt controller servicing a single execution
// core. Raised lines are dispatched strictly in raise order, one at a time;
// a line is not dispatched again until the previous invocation has been
// acknowledged, and nothing is dispatched while interrupts are masked.
type Controller struct {
	mu sync.Mutex

	handlers [numVectors]Handler
	pending  []IRQ

	inService   [numVectors]bool
	numInSvc    int
	dispatching bool
}

// NewController returns a controller with no registered handlers.
func NewController() *Controller {
	return &Controller{}
}

// HandleIRQ registers a handler for the given interrupt line, replacing any
// previous registration.
func (c *Controller) HandleIRQ(line IRQ, handler Handler) {
	c.mu.Lock()
	c.handlers[line] = handler
	c.mu.Unlock()
}

// Raise signals the given interrupt line. If interrupts are enabled and no
// other interrupt is being serviced, the registered handler runs synchronously
// on the caller; otherwise the request is queued and delivered in order once
// dispatching becomes possible again.
func (c *Controller) Raise(line IRQ) {
	c.mu.Lock()
	c.pending = append(c.pending, line)
	c.mu.Unlock()
	c.Service()
}

// Acknowledge signals end-of-interrupt for the given line. Acknowledging a
// line that is not in service has no effect; in particular it does not
// complete an interrupt in service on a different line.
func (c *Controller) Acknowledge(line IRQ) {
	c.mu.Lock()
	if c.inService[line] {
		c.inService[line] = false
		c.numInSvc--
	}
	c.mu.Unlock()
	c.Service()
}

// Service dispatches queued interrupts for as long as interrupts are enabled
// and no interrupt is in service. It is invoked on every raise, on every
// acknowledge and whenever the CPU re-enables interrupts.
func (c *Controller) Service() {
	c.mu.Lock()
	if c.dispatching {
		// Already draining further up the call stack.
		c.mu.Unlock()
		return
	}
	c.dispatching = true

	for len(c.pending) > 0 && c.numInSvc == 0 && cpu.InterruptsEnabled() {
		line := c.pending[0]
		c.pending = c.pending[1:]
		c.inService[line] = true
		c.numInSvc++
		handler := c.handlers[line]
		c.mu.Unlock()

		// Handlers run with interrupts masked, mirroring an interrupt
		// gate. The previous state is restored afterwards so the loop
		// condition sees the real flag.
		cpu.DisableInterrupts()
		if handler != nil {
			handler()
		}
		cpu.EnableInterrupts()

		c.mu.Lock()
	}

	c.dispatching = false
	c.mu.Unlock()
}

var defaultController = NewController()

func init() {
	cpu.InterruptsEnableHook(defaultController.Service)
}

// HandleIRQ registers a handler for the given line on the system controller.
func HandleIRQ(line IRQ, handler Handler) {
	defaultController.HandleIRQ(line, handler)
}

// Raise signals the given line on the system controller.
func Raise(line IRQ) {
	defaultController.Raise(line)
}

// Acknowledge signals end-of-interrupt for the given line on the system
// controller.
func Acknowledge(line IRQ) {
	defaultController.Acknowledge(line)
}
