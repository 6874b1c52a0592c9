package comport

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Transport is the bus a serial device hangs off.
type Transport int

const (
	TransportUnknown Transport = iota
	TransportUSB
	TransportBluetooth
	TransportPCI
)

func (t Transport) String() string {
	switch t {
	case TransportUSB:
		return "USB"
	case TransportBluetooth:
		return "Bluetooth"
	case TransportPCI:
		return "PCI"
	default:
		return "Unknown"
	}
}

// PortInfo describes one enumerated serial device.
type PortInfo struct {
	Name        string
	Path        string
	Description string
	Transport   Transport

	// USB metadata, filled from sysfs when Transport is USB.
	VendorID        string
	ProductID       string
	SerialNumber    string
	Manufacturer    string
	Product         string
	InterfaceNumber string
	BusNumber       string
	DeviceNumber    string
}

// Patterns for device names that are real serial lines.
var portPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^ttyUSB\d+$`), // USB serial adapters
	regexp.MustCompile(`^ttyACM\d+$`), // USB CDC/ACM devices
	regexp.MustCompile(`^ttyS\d+$`),   // Standard serial ports
	regexp.MustCompile(`^ttyAMA\d+$`), // ARM/Raspberry Pi serial
	regexp.MustCompile(`^ttymxc\d+$`), // i.MX serial ports
	regexp.MustCompile(`^ttyO\d+$`),   // OMAP serial ports
	regexp.MustCompile(`^ttySAC\d+$`), // Samsung serial ports
	regexp.MustCompile(`^ttyTHS\d+$`), // Tegra serial ports
	regexp.MustCompile(`^rfcomm\d+$`), // Bluetooth RFCOMM
}

// Virtual terminals and pseudo-terminals never qualify.
var excludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^tty\d+$`),
	regexp.MustCompile(`^console$`),
	regexp.MustCompile(`^ptmx$`),
	regexp.MustCompile(`^pty.*$`),
	regexp.MustCompile(`^pts/.*$`),
}

// ListPorts returns the device paths of the serial ports present on the
// system, sorted. Only communication-capable character devices are
// reported; virtual terminals and pseudo-terminals are filtered out.
func ListPorts() ([]string, error) {
	entries, err := os.ReadDir("/dev")
	if err != nil {
		return nil, err
	}

	var ports []string
	for _, entry := range entries {
		name := entry.Name()

		if matchesAny(excludePatterns, name) || !matchesAny(portPatterns, name) {
			continue
		}

		path := filepath.Join("/dev", name)
		if isCharacterDevice(path) {
			ports = append(ports, path)
		}
	}

	sort.Strings(ports)
	return ports, nil
}

func matchesAny(patterns []*regexp.Regexp, name string) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(name) {
			return true
		}
	}
	return false
}

func isCharacterDevice(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// GetPortInfo returns directory metadata for a single serial device:
// transport kind, a human-readable description and, for USB devices,
// the sysfs identification data.
func GetPortInfo(portPath string) (*PortInfo, error) {
	if !isCharacterDevice(portPath) {
		return nil, ErrDeviceNotFound
	}

	name := filepath.Base(portPath)
	info := &PortInfo{
		Name:        name,
		Path:        portPath,
		Description: portDescription(name),
		Transport:   classifyTransport(name),
	}

	if info.Transport == TransportUSB {
		enrichUSBInfo(info)
	}

	return info, nil
}

func portDescription(name string) string {
	switch {
	case strings.HasPrefix(name, "ttyUSB"):
		return "USB Serial Port"
	case strings.HasPrefix(name, "ttyACM"):
		return "USB CDC/ACM Device"
	case strings.HasPrefix(name, "rfcomm"):
		return "Bluetooth Serial Port"
	case strings.HasPrefix(name, "ttyAMA"):
		return "ARM Serial Port"
	case strings.HasPrefix(name, "ttymxc"):
		return "i.MX Serial Port"
	case strings.HasPrefix(name, "ttySAC"):
		return "Samsung Serial Port"
	case strings.HasPrefix(name, "ttyTHS"):
		return "Tegra Serial Port"
	case strings.HasPrefix(name, "ttyO"):
		return "OMAP Serial Port"
	case strings.HasPrefix(name, "ttyS"):
		return "Standard Serial Port"
	default:
		return "Serial Port"
	}
}

// classifyTransport decides the bus kind from the device name, falling
// back to the sysfs subsystem link for the ambiguous ttyS* family.
func classifyTransport(name string) Transport {
	switch {
	case strings.HasPrefix(name, "ttyUSB"), strings.HasPrefix(name, "ttyACM"):
		return TransportUSB
	case strings.HasPrefix(name, "rfcomm"):
		return TransportBluetooth
	}

	link := filepath.Join(sysfsRoot, "class", "tty", name, "device", "subsystem")
	target, err := os.Readlink(link)
	if err != nil {
		return TransportUnknown
	}

	switch filepath.Base(target) {
	case "usb", "usb-serial":
		return TransportUSB
	case "pci":
		return TransportPCI
	default:
		return TransportUnknown
	}
}
