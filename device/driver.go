package device

import (
	"io"

	"github.com/MarognaLorenzo/MarOS/kernel"
)

// Driver is an interface implemented by all drivers.
type Driver interface {
	// DriverName returns the name of the driver.
	DriverName() string

	// DriverVersion returns the driver version.
	DriverVersion() (major uint16, minor uint16, patch uint16)

	// DriverInit initializes the device driver. If the driver init code
	// needs to log some output, it can use the supplied io.Writer in
	// conjunction with a call to kfmt.Fprintf.
	DriverInit(io.Writer) *kernel.Error
}

// ProbeFn is a function that scans for the presence of a particular piece of
// hardware and returns a driver for it, or nil if the hardware is absent.
type ProbeFn func() Driver

// DetectOrder specifies when each driver's probe function is invoked relative
// to the other registered drivers.
type DetectOrder int

const (
	// DetectOrderEarly is used by drivers that other drivers depend on:
	// the console must exist before the terminal attaches to it, and the
	// terminal before the input drivers dispatch to it.
	DetectOrderEarly DetectOrder = -100

	// DetectOrderNormal is the default detection order.
	DetectOrderNormal DetectOrder = 0

	// DetectOrderLast is used by drivers that require every other device
	// to be initialized first.
	DetectOrderLast DetectOrder = 100
)

// DriverInfo describes a driver registered with this package.
type DriverInfo struct {
	// Order specifies the relative order that the driver's probe function
	// gets invoked at hardware detection time.
	Order DetectOrder

	// Probe checks for the presence of the device and returns a driver
	// for it.
	Probe ProbeFn
}

// DriverInfoList is a list of registered drivers that implements
// sort.Interface ordering by detection order.
type DriverInfoList []*DriverInfo

// Len returns the length of the driver list.
func (l DriverInfoList) Len() int { return len(l) }

// Swap exchanges 2 elements in the driver list.
func (l DriverInfoList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

// Less compares 2 elements of the driver list by detection order.
func (l DriverInfoList) Less(i, j int) bool { return l[i].Order < l[j].Order }

var registeredDrivers DriverInfoList

// RegisterDriver adds the supplied driver info to the list of registered
// drivers. Each driver package registers itself from an init() block.
func RegisterDriver(info *DriverInfo) {
	registeredDrivers = append(registeredDrivers, info)
}

// DriverList returns the list of registered drivers.
func DriverList() DriverInfoList {
	return registeredDrivers
}
