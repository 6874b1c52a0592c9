// Package comport provides a clean, idiomatic Go library for serial port
// communication on Linux systems (x86_64 and ARM).
//
// # Basic Usage
//
// Build and open a port with the fluent builder (defaults are 9600 8N1,
// no flow control, non-blocking I/O):
//
//	port, err := comport.New("/dev/ttyUSB0", 115200).
//	    Timeout(time.Second).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	// Simple I/O
//	n, err := port.Write([]byte("Hello"))
//	buffer := make([]byte, 256)
//	n, err = port.Read(buffer)
//
// # Configuration
//
// Every line-control setter works on both open and closed ports. On an
// open port the full configuration is re-applied to the device at once:
//
//	err = port.SetBaudRate(19200)
//	err = port.SetParity(comport.ParityEven)
//	err = port.SetTimeout(500 * time.Millisecond)
//
// If re-applying the configuration fails the port closes itself, so
// IsOpen always reflects a handle in a known-good state.
//
// # Port Discovery
//
// List available serial ports and get USB device metadata:
//
//	ports, err := comport.ListPorts()
//	for _, portPath := range ports {
//	    info, _ := comport.GetPortInfo(portPath)
//	    fmt.Printf("%s: %s (VID=%s PID=%s Serial=%s)\n",
//	        info.Path, info.Description, info.VendorID, info.ProductID, info.SerialNumber)
//	}
//
// # Modem Signals
//
// Read and control the modem status lines:
//
//	signals, err := port.Signals()
//	fmt.Printf("CTS=%v DSR=%v DCD=%v RI=%v\n",
//	    signals.CTS, signals.DSR, signals.DCD, signals.RI)
//
//	err = port.SetRTS(true)
//	err = port.SetDTR(false)
//
// # USB Device Management
//
// Reset hung USB devices programmatically:
//
//	// Reset by port path
//	err := comport.ResetUSBDevice("/dev/ttyUSB0")
//
//	// Reset by serial number (survives re-enumeration)
//	err = comport.ResetUSBDeviceBySerial("FT123456")
//
// Requires the usbreset utility from usbutils and root/sudo permissions.
//
// # Error Handling
//
// Failures map onto sentinel errors; use errors.Is() for checks:
//
//	if errors.Is(err, comport.ErrTimeout) {
//	    // no data arrived within the configured timeout
//	}
//
//	var (
//	    ErrDeviceNotFound       // device path does not exist
//	    ErrPermissionDenied     // insufficient permissions
//	    ErrPortClosed           // operation on a closed port
//	    ErrTimeout              // zero bytes within the timeout
//	    ErrUSBInfoNotAvailable  // USB metadata unavailable
//	    ErrUSBResetNotAvailable // usbreset utility not found
//	    // ... and more
//	)
//
// # Concurrency
//
// A Port performs no internal locking. Hand a Port between goroutines
// freely, but serialize concurrent calls on the same Port yourself, or
// use TryClone to give each goroutine its own handle to the device.
package comport
