package hid

import (
	"errors"
	"slices"

	"github.com/karalabe/hid"
)

var errUnsupported = errors.New("HID enumeration is not supported on this platform")

// usagePageDigitizer is the HID usage page for touch screens and pads
const usagePageDigitizer = 0x0D

// DeviceInfo contains information about a discovered HID device
type DeviceInfo struct {
	VendorID     uint16
	ProductID    uint16
	Path         string
	Manufacturer string
	Product      string
	SerialNumber string
	UsagePage    uint16
	Usage        uint16
}

// Digitizer reports whether the interface advertises the digitizer usage page
func (d DeviceInfo) Digitizer() bool {
	return d.UsagePage == usagePageDigitizer
}

func toDeviceInfo(d hid.DeviceInfo) DeviceInfo {
	return DeviceInfo{
		VendorID:     d.VendorID,
		ProductID:    d.ProductID,
		Path:         d.Path,
		Manufacturer: d.Manufacturer,
		Product:      d.Product,
		SerialNumber: d.Serial,
		UsagePage:    d.UsagePage,
		Usage:        d.Usage,
	}
}

// ListDevices returns every HID interface on the host
func ListDevices() ([]DeviceInfo, error) {
	if !hid.Supported() {
		return nil, errUnsupported
	}

	devices := hid.Enumerate(0, 0)
	result := make([]DeviceInfo, len(devices))
	for i, d := range devices {
		result[i] = toDeviceInfo(d)
	}
	return result, nil
}

// FindDevice returns the first interface matching vendorID and productID,
// preferring one on the digitizer usage page. It returns nil when nothing
// matches.
func FindDevice(vendorID, productID uint16) (*DeviceInfo, error) {
	if !hid.Supported() {
		return nil, errUnsupported
	}

	devices := hid.Enumerate(vendorID, productID)
	if len(devices) == 0 {
		return nil, nil
	}

	info := toDeviceInfo(devices[0])
	for _, d := range devices {
		if d.UsagePage == usagePageDigitizer {
			info = toDeviceInfo(d)
			break
		}
	}
	return &info, nil
}

// Unique collapses composite devices, which enumerate once per interface,
// to one entry per vendor/product pair, keeping the digitizer interface
// when there is one. Entries with zero IDs are dropped. Digitizers sort
// ahead of other devices; order is otherwise kept.
func Unique(devices []DeviceInfo) []DeviceInfo {
	index := make(map[uint32]int)
	var unique []DeviceInfo

	for _, d := range devices {
		if d.VendorID == 0 && d.ProductID == 0 {
			continue
		}
		key := uint32(d.VendorID)<<16 | uint32(d.ProductID)
		i, ok := index[key]
		if !ok {
			index[key] = len(unique)
			unique = append(unique, d)
			continue
		}
		if d.Digitizer() && !unique[i].Digitizer() {
			unique[i] = d
		}
	}

	slices.SortStableFunc(unique, func(a, b DeviceInfo) int {
		switch {
		case a.Digitizer() == b.Digitizer():
			return 0
		case a.Digitizer():
			return -1
		default:
			return 1
		}
	})
	return unique
}
