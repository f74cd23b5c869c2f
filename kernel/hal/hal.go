// Package hal discovers the emulated hardware devices and wires them
// together: the first console found hosts the first TTY found, and all
// kernel output is redirected to that TTY once the link is established.
package hal

import (
	"sort"

	"github.com/MarognaLorenzo/MarOS/device"
	"github.com/MarognaLorenzo/MarOS/device/tty"
	"github.com/MarognaLorenzo/MarOS/device/video/console"
	"github.com/MarognaLorenzo/MarOS/kernel/kfmt"
	"github.com/MarognaLorenzo/MarOS/kernel/sync"
)

// managedDevices contains the devices discovered by the HAL.
type managedDevices struct {
	activeConsole console.Device
	activeTTY     tty.Device

	// activeDrivers tracks all initialized device drivers.
	activeDrivers []device.Driver
}

var (
	devices managedDevices

	// ttyLock serializes access to the active TTY between the interrupt
	// handlers and the host frontend. Holders run with interrupts masked.
	ttyLock sync.IrqSpinlock
)

// ActiveTTY returns the currently active TTY.
func ActiveTTY() tty.Device {
	return devices.activeTTY
}

// ActiveConsole returns the currently active console.
func ActiveConsole() console.Device {
	return devices.activeConsole
}

// ActiveDrivers returns the list of initialized device drivers.
func ActiveDrivers() []device.Driver {
	return devices.activeDrivers
}

// WithTTY invokes fn with the active TTY while holding the terminal lock
// with interrupts masked. Calls before a TTY has been initialized are
// dropped.
func WithTTY(fn func(tty.Device)) {
	if devices.activeTTY == nil {
		return
	}

	ttyLock.With(func() {
		fn(devices.activeTTY)
	})
}

// lockedTTY adapts the active TTY into an io.Writer that takes the
// terminal lock around each write. It backs the kfmt output sink.
type lockedTTY struct{}

func (lockedTTY) Write(p []byte) (n int, err error) {
	WithTTY(func(term tty.Device) {
		n, err = term.Write(p)
	})

	return n, err
}

// DetectHardware probes for hardware devices and initializes the
// appropriate drivers.
func DetectHardware() {
	// Get driver list and sort by detection priority
	drivers := device.DriverList()
	sort.Sort(drivers)

	probe(drivers)
}

// probe executes the probe function for each driver and invokes
// onDriverInit for each successfully initialized driver.
func probe(driverInfoList device.DriverInfoList) {
	for _, info := range driverInfoList {
		drv := info.Probe()
		if drv == nil {
			continue
		}

		// The sink is re-read per driver: a driver initialized earlier in
		// this loop may have redirected kernel output to the terminal.
		w := kfmt.NewDriverLog(kfmt.GetOutputSink())
		major, minor, patch := drv.DriverVersion()
		w.SetDriver(drv.DriverName(), major, minor, patch)

		if err := drv.DriverInit(w); err != nil {
			kfmt.Fprintf(w, "init failed: %s\n", err.Message)
			continue
		}

		kfmt.Fprintf(w, "initialized\n")
		onDriverInit(drv)
		devices.activeDrivers = append(devices.activeDrivers, drv)
	}
}

// onDriverInit is invoked by probe() whenever a piece of hardware is detected
// and successfully initialized. The first console and the first TTY found
// become active and get linked to each other.
func onDriverInit(drv device.Driver) {
	switch drvImpl := drv.(type) {
	case console.Device:
		if devices.activeConsole != nil {
			return
		}

		devices.activeConsole = drvImpl
		if devices.activeTTY != nil {
			linkTTYToConsole()
		}
	case tty.Device:
		if devices.activeTTY != nil {
			return
		}

		devices.activeTTY = drvImpl
		if devices.activeConsole != nil {
			linkTTYToConsole()
		}
	}
}

// linkTTYToConsole connects the active TTY device to the active console
// device and redirects kernel output to the terminal, replaying anything
// accumulated during early boot.
func linkTTYToConsole() {
	devices.activeTTY.AttachTo(devices.activeConsole)
	kfmt.SetOutputSink(lockedTTY{})
}
