package kfmt

import (
	"bytes"
	"fmt"
	"io"
)

// DriverLog is an io.Writer handed to drivers during hardware detection. It
// tags every line written through it with the owning driver's name and
// version so interleaved init output stays attributable, e.g.
//
//	[hal] ps2_keyboard(0.1.0): decoding scancodes from port 0x60
//
// The tag is tracked across writes: a line continued over several Write
// calls is tagged only once.
type DriverLog struct {
	sink io.Writer

	tag     []byte
	midLine bool
}

// NewDriverLog returns a DriverLog forwarding to the given sink.
func NewDriverLog(sink io.Writer) *DriverLog {
	return &DriverLog{sink: sink}
}

// SetDriver sets the driver whose output is being logged. Subsequent lines
// are tagged with its name and version.
func (w *DriverLog) SetDriver(name string, major, minor, patch uint16) {
	w.tag = []byte(fmt.Sprintf("[hal] %s(%d.%d.%d): ", name, major, minor, patch))
}

// Write forwards p to the sink, injecting the driver tag at the start of
// each line. The returned count covers the bytes of p only, not the
// injected tags.
func (w *DriverLog) Write(p []byte) (int, error) {
	var written int

	for len(p) > 0 {
		if !w.midLine {
			if _, err := w.sink.Write(w.tag); err != nil {
				return written, err
			}
			w.midLine = true
		}

		end := bytes.IndexByte(p, '\n')
		if end == -1 {
			n, err := w.sink.Write(p)
			return written + n, err
		}

		n, err := w.sink.Write(p[:end+1])
		written += n
		if err != nil {
			return written, err
		}

		w.midLine = false
		p = p[end+1:]
	}

	return written, nil
}
