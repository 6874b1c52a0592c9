package comport

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPortPatterns(t *testing.T) {
	matching := []string{
		"ttyUSB0", "ttyUSB12", "ttyACM0", "ttyS0", "ttyS31",
		"ttyAMA0", "ttymxc1", "ttyO2", "ttySAC3", "ttyTHS1", "rfcomm0",
	}
	for _, name := range matching {
		if !matchesAny(portPatterns, name) {
			t.Errorf("%s should match a port pattern", name)
		}
	}

	nonMatching := []string{
		"tty", "ttyUSB", "sda1", "null", "random", "ttyUSB0a",
	}
	for _, name := range nonMatching {
		if matchesAny(portPatterns, name) {
			t.Errorf("%s should not match any port pattern", name)
		}
	}
}

func TestExcludePatterns(t *testing.T) {
	excluded := []string{"tty0", "tty63", "console", "ptmx"}
	for _, name := range excluded {
		if !matchesAny(excludePatterns, name) {
			t.Errorf("%s should be excluded", name)
		}
	}

	if matchesAny(excludePatterns, "ttyUSB0") {
		t.Error("ttyUSB0 should not be excluded")
	}
}

func TestIsCharacterDevice(t *testing.T) {
	if !isCharacterDevice("/dev/null") {
		t.Error("/dev/null should be a character device")
	}

	tmpFile := filepath.Join(t.TempDir(), "regular")
	if err := os.WriteFile(tmpFile, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if isCharacterDevice(tmpFile) {
		t.Error("a regular file is not a character device")
	}

	if isCharacterDevice("/no/such/path") {
		t.Error("a missing path is not a character device")
	}
}

func TestListPorts(t *testing.T) {
	ports, err := ListPorts()
	if err != nil {
		t.Fatalf("ListPorts failed: %v", err)
	}

	// Whatever is present must be sorted, under /dev and never a
	// virtual terminal.
	for i, port := range ports {
		if filepath.Dir(port) != "/dev" {
			t.Errorf("port %s not under /dev", port)
		}
		if i > 0 && ports[i-1] >= port {
			t.Errorf("ports not sorted: %s before %s", ports[i-1], port)
		}
		if matchesAny(excludePatterns, filepath.Base(port)) {
			t.Errorf("excluded device %s reported as a port", port)
		}
	}
}

func TestGetPortInfoNotFound(t *testing.T) {
	_, err := GetPortInfo("/dev/tty-does-not-exist-0")
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("GetPortInfo(missing) = %v, expected ErrDeviceNotFound", err)
	}
}

func TestPortDescription(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"ttyUSB0", "USB Serial Port"},
		{"ttyACM1", "USB CDC/ACM Device"},
		{"rfcomm0", "Bluetooth Serial Port"},
		{"ttyAMA0", "ARM Serial Port"},
		{"ttyS4", "Standard Serial Port"},
		{"something", "Serial Port"},
	}

	for _, tt := range tests {
		if got := portDescription(tt.name); got != tt.expected {
			t.Errorf("portDescription(%q) = %q, expected %q", tt.name, got, tt.expected)
		}
	}
}

func TestClassifyTransportByName(t *testing.T) {
	tests := []struct {
		name     string
		expected Transport
	}{
		{"ttyUSB0", TransportUSB},
		{"ttyACM2", TransportUSB},
		{"rfcomm1", TransportBluetooth},
	}

	for _, tt := range tests {
		if got := classifyTransport(tt.name); got != tt.expected {
			t.Errorf("classifyTransport(%q) = %v, expected %v", tt.name, got, tt.expected)
		}
	}
}

func TestClassifyTransportFromSysfs(t *testing.T) {
	tmpDir := t.TempDir()
	oldRoot := sysfsRoot
	sysfsRoot = tmpDir
	defer func() { sysfsRoot = oldRoot }()

	// ttyS0 on the PCI bus.
	busDir := filepath.Join(tmpDir, "bus", "pci")
	deviceDir := filepath.Join(tmpDir, "class", "tty", "ttyS0", "device")
	if err := os.MkdirAll(busDir, 0755); err != nil {
		t.Fatalf("failed to create bus dir: %v", err)
	}
	if err := os.MkdirAll(deviceDir, 0755); err != nil {
		t.Fatalf("failed to create device dir: %v", err)
	}
	if err := os.Symlink(busDir, filepath.Join(deviceDir, "subsystem")); err != nil {
		t.Fatalf("failed to create subsystem symlink: %v", err)
	}

	if got := classifyTransport("ttyS0"); got != TransportPCI {
		t.Errorf("classifyTransport(ttyS0) = %v, expected PCI", got)
	}

	// No sysfs entry at all.
	if got := classifyTransport("ttyS9"); got != TransportUnknown {
		t.Errorf("classifyTransport(ttyS9) = %v, expected Unknown", got)
	}
}

func TestTransportString(t *testing.T) {
	tests := []struct {
		transport Transport
		expected  string
	}{
		{TransportUSB, "USB"},
		{TransportBluetooth, "Bluetooth"},
		{TransportPCI, "PCI"},
		{TransportUnknown, "Unknown"},
		{Transport(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.transport.String(); got != tt.expected {
			t.Errorf("Transport.String() = %q, expected %q", got, tt.expected)
		}
	}
}
