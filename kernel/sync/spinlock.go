// Package sync provides the synchronization primitives used around shared
// console state: a busy-wait spinlock and a variant that masks interrupts for
// the duration of the critical section.
package sync

import (
	"runtime"
	"sync/atomic"

	"github.com/MarognaLorenzo/MarOS/kernel/cpu"
)

var (
	// yieldFn is invoked between acquisition attempts. On the host runtime
	// the scheduler must be given a chance to run the lock holder.
	yieldFn = runtime.Gosched
)

// Spinlock implements a lock where each task trying to acquire it busy-waits
// till the lock becomes available.
type Spinlock struct {
	state uint32
}

// Acquire blocks until the lock can be acquired by the currently active task.
// Any attempt to re-acquire a lock already held by the current task will cause
// a deadlock.
func (l *Spinlock) Acquire() {
	for !atomic.CompareAndSwapUint32(&l.state, 0, 1) {
		yieldFn()
	}
}

// TryToAcquire attempts to acquire the lock and returns true if the lock could
// be acquired or false otherwise.
func (l *Spinlock) TryToAcquire() bool {
	return atomic.SwapUint32(&l.state, 1) == 0
}

// Release relinquishes a held lock allowing other tasks to acquire it. Calling
// Release while the lock is free has no effect.
func (l *Spinlock) Release() {
	atomic.StoreUint32(&l.state, 0)
}

// IrqSpinlock is a spinlock whose critical sections also run with hardware
// interrupts masked. Any code path that mutates console state shared with an
// interrupt handler must use this lock: a plain spinlock held by non-interrupt
// code would self-deadlock the core the moment a keyboard handler spins on it.
type IrqSpinlock struct {
	lock Spinlock

	// wasEnabled records the interrupt-enable state at Acquire time so
	// that Release can restore it. Guarded by lock.
	wasEnabled bool
}

// Acquire masks interrupts and then acquires the lock, recording the previous
// interrupt-enable state.
func (l *IrqSpinlock) Acquire() {
	enabled := cpu.InterruptsEnabled()
	cpu.DisableInterrupts()
	l.lock.Acquire()
	l.wasEnabled = enabled
}

// Release relinquishes the lock and restores the interrupt-enable state
// captured by the matching Acquire.
func (l *IrqSpinlock) Release() {
	enabled := l.wasEnabled
	l.lock.Release()
	if enabled {
		cpu.EnableInterrupts()
	}
}

// With runs fn inside the scoped critical section. The lock is released and
// the interrupt state restored even if fn panics.
func (l *IrqSpinlock) With(fn func()) {
	l.Acquire()
	defer l.Release()
	fn()
}
