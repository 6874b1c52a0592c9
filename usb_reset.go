package comport

import (
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// reenumerateDelay gives a reset device time to come back before callers
// try to reopen it.
const reenumerateDelay = 2 * time.Second

// ResetUSBDevice performs a USB-level reset of the device backing
// portPath. This can recover adapters that are hung or unresponsive.
//
// The usbreset utility (from usbutils) must be installed and the caller
// needs permission to reset the device, typically root. Returns
// ErrUSBResetNotAvailable when the utility is missing and
// ErrUSBInfoNotAvailable when the port is not USB-backed or sysfs
// metadata could not be read.
func ResetUSBDevice(portPath string) error {
	info, err := GetPortInfo(portPath)
	if err != nil {
		return fmt.Errorf("failed to get port info: %w", err)
	}

	if info.BusNumber == "" || info.DeviceNumber == "" {
		return ErrUSBInfoNotAvailable
	}

	if !IsUSBResetAvailable() {
		return ErrUSBResetNotAvailable
	}

	usbPath, err := formatUSBPath(info.BusNumber, info.DeviceNumber)
	if err != nil {
		return ErrUSBInfoNotAvailable
	}

	cmd := exec.Command("usbreset", usbPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("usbreset failed: %w (output: %s)", err, string(output))
	}

	// Wait for the device to re-enumerate.
	time.Sleep(reenumerateDelay)

	return nil
}

// ResetUSBDeviceBySerial resets a USB device identified by its serial
// number. Useful when device paths shuffle across reboots or when
// several identical adapters are connected.
func ResetUSBDeviceBySerial(serialNumber string) error {
	ports, err := ListPorts()
	if err != nil {
		return err
	}

	for _, portPath := range ports {
		info, err := GetPortInfo(portPath)
		if err != nil {
			continue
		}

		if info.SerialNumber == serialNumber {
			return ResetUSBDevice(portPath)
		}
	}

	return fmt.Errorf("device with serial %s not found", serialNumber)
}

// IsUSBResetAvailable reports whether the usbreset utility is in PATH.
func IsUSBResetAvailable() bool {
	_, err := exec.LookPath("usbreset")
	return err == nil
}

// formatUSBPath builds the BBB/DDD argument usbreset expects from the
// decimal bus and device numbers sysfs reports.
func formatUSBPath(bus, device string) (string, error) {
	busNum, err := strconv.Atoi(bus)
	if err != nil {
		return "", err
	}
	devNum, err := strconv.Atoi(device)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%03d/%03d", busNum, devNum), nil
}
