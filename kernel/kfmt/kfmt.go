// Package kfmt provides the formatted "print to console" entry point used by
// the rest of the kernel. Output produced before a console sink is installed
// accumulates in a ring buffer and is replayed once a sink becomes available.
//
// The installed sink is expected to serialize access to the underlying
// terminal; the hal wires in a sink that takes the console's interrupt-masked
// spinlock around every write.
package kfmt

import (
	"fmt"
	"io"
)

var (
	// earlyPrintBuffer captures Printf output emitted before the console
	// and TTY devices are initialized.
	earlyPrintBuffer ringBuffer

	// outputSink is the io.Writer where Printf sends its output. While nil,
	// output is redirected to the earlyPrintBuffer.
	outputSink io.Writer
)

// SetOutputSink sets the target for calls to Printf to w and copies any data
// accumulated in the early print buffer to it.
func SetOutputSink(w io.Writer) {
	outputSink = w
	if w != nil {
		io.Copy(w, &earlyPrintBuffer)
	}
}

// GetOutputSink returns the io.Writer that Printf output is sent to.
func GetOutputSink() io.Writer {
	if outputSink == nil {
		return &earlyPrintBuffer
	}
	return outputSink
}

// Printf formats according to the format specifier and writes the result to
// the active output sink.
func Printf(format string, args ...interface{}) {
	fmt.Fprintf(GetOutputSink(), format, args...)
}

// Fprintf formats according to the format specifier and writes the result
// to w.
func Fprintf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}
