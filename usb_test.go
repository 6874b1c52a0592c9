package comport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadSysfsFile(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		expected string
		setup    func(string) error
	}{
		{
			name:     "trailing newline",
			expected: "1234",
			setup: func(path string) error {
				return os.WriteFile(path, []byte("1234\n"), 0644)
			},
		},
		{
			name:     "surrounding whitespace",
			expected: "test value",
			setup: func(path string) error {
				return os.WriteFile(path, []byte("  test value  \n"), 0644)
			},
		},
		{
			name:     "nonexistent file",
			expected: "",
			setup:    func(path string) error { return nil },
		},
		{
			name:     "empty file",
			expected: "",
			setup: func(path string) error {
				return os.WriteFile(path, []byte(""), 0644)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(tmpDir, strings.ReplaceAll(tt.name, " ", "-"))
			if err := tt.setup(testFile); err != nil {
				t.Fatalf("setup failed: %v", err)
			}

			if got := readSysfsFile(testFile); got != tt.expected {
				t.Errorf("readSysfsFile() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

// TestEnrichUSBInfo builds a fake sysfs tree mirroring how the kernel
// lays out a ttyUSB device:
//
//	class/tty/ttyUSB0/device -> devices/usb5/5-2.3.1/5-2.3.1:1.0/ttyUSB0
//	devices/usb5/5-2.3.1/5-2.3.1:1.0/   interface directory
//	devices/usb5/5-2.3.1/               USB device directory
func TestEnrichUSBInfo(t *testing.T) {
	tmpDir := t.TempDir()
	oldRoot := sysfsRoot
	sysfsRoot = tmpDir
	defer func() { sysfsRoot = oldRoot }()

	devicePath := filepath.Join(tmpDir, "devices", "usb5", "5-2.3.1")
	interfacePath := filepath.Join(devicePath, "5-2.3.1:1.0")
	ttyPath := filepath.Join(interfacePath, "ttyUSB0")
	classTtyPath := filepath.Join(tmpDir, "class", "tty", "ttyUSB0")

	if err := os.MkdirAll(ttyPath, 0755); err != nil {
		t.Fatalf("failed to create device tree: %v", err)
	}
	if err := os.MkdirAll(classTtyPath, 0755); err != nil {
		t.Fatalf("failed to create class/tty entry: %v", err)
	}

	deviceFiles := map[string]string{
		"idVendor":     "0403",
		"idProduct":    "6010",
		"serial":       "FT123456",
		"manufacturer": "FTDI",
		"product":      "FT2232C Dual USB-UART",
		"busnum":       "5",
		"devnum":       "7",
	}
	for filename, content := range deviceFiles {
		path := filepath.Join(devicePath, filename)
		if err := os.WriteFile(path, []byte(content+"\n"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", filename, err)
		}
	}

	interfaceFile := filepath.Join(interfacePath, "bInterfaceNumber")
	if err := os.WriteFile(interfaceFile, []byte("00\n"), 0644); err != nil {
		t.Fatalf("failed to write interface number: %v", err)
	}

	if err := os.Symlink(ttyPath, filepath.Join(classTtyPath, "device")); err != nil {
		t.Fatalf("failed to create device symlink: %v", err)
	}

	info := &PortInfo{Name: "ttyUSB0", Path: "/dev/ttyUSB0"}
	enrichUSBInfo(info)

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"VendorID", info.VendorID, "0403"},
		{"ProductID", info.ProductID, "6010"},
		{"SerialNumber", info.SerialNumber, "FT123456"},
		{"Manufacturer", info.Manufacturer, "FTDI"},
		{"Product", info.Product, "FT2232C Dual USB-UART"},
		{"InterfaceNumber", info.InterfaceNumber, "00"},
		{"BusNumber", info.BusNumber, "5"},
		{"DeviceNumber", info.DeviceNumber, "7"},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s = %q, expected %q", tt.name, tt.got, tt.expected)
		}
	}
}

// A ttyACM-style layout links class/tty directly to the interface
// directory, with no nested tty node.
func TestEnrichUSBInfoACMLayout(t *testing.T) {
	tmpDir := t.TempDir()
	oldRoot := sysfsRoot
	sysfsRoot = tmpDir
	defer func() { sysfsRoot = oldRoot }()

	devicePath := filepath.Join(tmpDir, "devices", "usb1", "1-4")
	interfacePath := filepath.Join(devicePath, "1-4:1.0")
	classTtyPath := filepath.Join(tmpDir, "class", "tty", "ttyACM0")

	if err := os.MkdirAll(interfacePath, 0755); err != nil {
		t.Fatalf("failed to create device tree: %v", err)
	}
	if err := os.MkdirAll(classTtyPath, 0755); err != nil {
		t.Fatalf("failed to create class/tty entry: %v", err)
	}
	if err := os.WriteFile(filepath.Join(devicePath, "idVendor"), []byte("2341\n"), 0644); err != nil {
		t.Fatalf("failed to write idVendor: %v", err)
	}
	if err := os.WriteFile(filepath.Join(devicePath, "idProduct"), []byte("0043\n"), 0644); err != nil {
		t.Fatalf("failed to write idProduct: %v", err)
	}
	if err := os.Symlink(interfacePath, filepath.Join(classTtyPath, "device")); err != nil {
		t.Fatalf("failed to create device symlink: %v", err)
	}

	info := &PortInfo{Name: "ttyACM0", Path: "/dev/ttyACM0"}
	enrichUSBInfo(info)

	if info.VendorID != "2341" {
		t.Errorf("VendorID = %q, expected 2341", info.VendorID)
	}
	if info.ProductID != "0043" {
		t.Errorf("ProductID = %q, expected 0043", info.ProductID)
	}
}

func TestEnrichUSBInfoGracefulFailure(t *testing.T) {
	info := &PortInfo{Name: "ttyUSB999", Path: "/dev/ttyUSB999"}

	// No sysfs entry exists; the fields must stay empty without panicking.
	enrichUSBInfo(info)

	if info.VendorID != "" || info.ProductID != "" || info.SerialNumber != "" {
		t.Errorf("USB fields should be empty for a missing device: %+v", info)
	}
}

func TestFormatUSBPath(t *testing.T) {
	tests := []struct {
		bus      string
		device   string
		expected string
	}{
		{"5", "7", "005/007"},
		{"1", "2", "001/002"},
		{"123", "456", "123/456"},
		{"1", "10", "001/010"},
	}

	for _, tt := range tests {
		got, err := formatUSBPath(tt.bus, tt.device)
		if err != nil {
			t.Errorf("formatUSBPath(%q, %q) failed: %v", tt.bus, tt.device, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("formatUSBPath(%q, %q) = %q, expected %q",
				tt.bus, tt.device, got, tt.expected)
		}
	}

	if _, err := formatUSBPath("x", "7"); err == nil {
		t.Error("formatUSBPath with non-numeric bus should fail")
	}
}

func TestResetUSBDeviceBySerialNotFound(t *testing.T) {
	err := ResetUSBDeviceBySerial("NONEXISTENT_SERIAL")
	if err == nil {
		t.Fatal("expected an error for a nonexistent serial number")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected a not-found error, got: %v", err)
	}
}

func TestIsUSBResetAvailable(t *testing.T) {
	// Cannot assume usbreset is installed; just verify it does not panic.
	t.Logf("usbreset available: %v", IsUSBResetAvailable())
}
