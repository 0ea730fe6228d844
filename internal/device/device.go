package device

import "strings"

// Kinds of attached targets.
const (
	KindEmulator = "emulator"
	KindDevice   = "device"
)

// Device represents a device or emulator reported by adb
type Device struct {
	Serial string
}

// Kind returns "emulator" for emulator serials and "device" otherwise
func (d Device) Kind() string {
	if strings.HasPrefix(d.Serial, "emulator") {
		return KindEmulator
	}
	return KindDevice
}

// IsEmulator reports whether the serial names an emulator instance
func (d Device) IsEmulator() bool {
	return d.Kind() == KindEmulator
}

// String returns a display string for the device
func (d Device) String() string {
	return d.Serial + " (" + d.Kind() + ")"
}

// FromSerials wraps serials in the order adb reported them
func FromSerials(serials []string) []Device {
	devices := make([]Device, 0, len(serials))
	for _, s := range serials {
		devices = append(devices, Device{Serial: s})
	}
	return devices
}
