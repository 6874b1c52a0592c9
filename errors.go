package comport

import "errors"

// Predefined error types for robust error handling
var (
	// ErrDeviceNotFound means the device path does not exist or is not a
	// serial device.
	ErrDeviceNotFound = errors.New("serial device not found")
	// ErrPermissionDenied means the process may not access the device.
	ErrPermissionDenied = errors.New("permission denied accessing serial device")
	// ErrDeviceInUse means another process holds the device.
	ErrDeviceInUse = errors.New("serial device already in use")
	// ErrAlreadyOpen is returned by Open on a port that is already open.
	ErrAlreadyOpen = errors.New("serial port already open")
	// ErrPortClosed is returned by I/O and read-back operations on a
	// closed port.
	ErrPortClosed = errors.New("serial port is closed")
	// ErrNoDevice is returned by Open when no device path has been set.
	ErrNoDevice = errors.New("no serial device configured")
	// ErrTimeout means no data arrived (or the operation did not finish)
	// within the configured timeout. With a zero timeout every read that
	// finds the input queue empty fails with ErrTimeout immediately.
	ErrTimeout = errors.New("serial operation timed out")
	// ErrInvalidBaud means the requested baud rate has no OS encoding.
	ErrInvalidBaud = errors.New("invalid baud rate")
	// ErrInvalidConfig means a configuration value is outside its domain
	// or cannot be expressed on this platform.
	ErrInvalidConfig = errors.New("invalid serial configuration")
	// ErrInvalidData means the OS control block held a value that does
	// not map back onto any configuration enum.
	ErrInvalidData = errors.New("unexpected value in serial line settings")

	// USB-related errors
	ErrUSBInfoNotAvailable  = errors.New("USB device information not available")
	ErrUSBResetNotAvailable = errors.New("usbreset utility not available")
)
