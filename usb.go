package comport

import (
	"os"
	"path/filepath"
	"strings"
)

// sysfsRoot is swapped out by tests that build a fake sysfs tree.
var sysfsRoot = "/sys"

// enrichUSBInfo fills in USB identification from sysfs. The tty class
// entry links into the USB interface directory; the device directory
// carrying idVendor and friends sits above it. Drivers differ in how
// deep they nest the tty node (ttyUSB sits under the interface, ttyACM
// links to the interface directly), so the device directory is located
// by climbing until idVendor appears.
func enrichUSBInfo(info *PortInfo) {
	link := filepath.Join(sysfsRoot, "class", "tty", info.Name, "device")
	resolved, err := filepath.EvalSymlinks(link)
	if err != nil {
		return
	}

	interfacePath := resolved
	if filepath.Base(resolved) == info.Name {
		interfacePath = filepath.Dir(resolved)
	}
	info.InterfaceNumber = readSysfsFile(filepath.Join(interfacePath, "bInterfaceNumber"))

	devicePath := interfacePath
	for i := 0; i < 4; i++ {
		if _, err := os.Stat(filepath.Join(devicePath, "idVendor")); err == nil {
			break
		}
		devicePath = filepath.Dir(devicePath)
	}

	info.VendorID = readSysfsFile(filepath.Join(devicePath, "idVendor"))
	info.ProductID = readSysfsFile(filepath.Join(devicePath, "idProduct"))
	info.SerialNumber = readSysfsFile(filepath.Join(devicePath, "serial"))
	info.Manufacturer = readSysfsFile(filepath.Join(devicePath, "manufacturer"))
	info.Product = readSysfsFile(filepath.Join(devicePath, "product"))
	info.BusNumber = readSysfsFile(filepath.Join(devicePath, "busnum"))
	info.DeviceNumber = readSysfsFile(filepath.Join(devicePath, "devnum"))
}

// readSysfsFile returns the trimmed contents of a sysfs attribute, or ""
// when the attribute does not exist.
func readSysfsFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
