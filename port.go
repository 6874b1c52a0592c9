package comport

import (
	"runtime"
	"time"
)

// invalidHandle is the sentinel for "no OS handle owned".
const invalidHandle = -1

// Port is a serial port with full lifecycle management.
//
// A Port owns at most one OS handle at a time. It is either Open (handle
// valid and configured from the stored Config) or Closed (no handle; the
// Config keeps the last-set values ready for the next Open). Every setter
// that changes line control re-applies the whole Config to the device, and
// a failed re-application force-closes the port so IsOpen never lies about
// the hardware.
//
// Port performs no internal locking. A Port may be handed from one
// goroutine to another, but concurrent calls on the same Port must be
// serialized by the caller; TryClone is the supported way to do I/O on the
// same device from several goroutines.
type Port struct {
	fd     int
	isOpen bool
	config Config
}

func newPort(config Config) (*Port, error) {
	p := &Port{fd: invalidHandle, config: config}
	// Drop-style safety net: release the handle if the port is garbage
	// collected while still open. Errors are ignored, same as os.File.
	runtime.SetFinalizer(p, (*Port).discard)

	if p.config.Device != "" {
		if err := p.Open(); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Port) discard() {
	_ = p.Close()
}

// IsOpen reports whether the port currently owns a valid, configured handle.
func (p *Port) IsOpen() bool {
	return p.isOpen
}

// Config returns a snapshot of the port's current configuration.
func (p *Port) Config() Config {
	return p.config
}

// Open acquires the OS handle for the configured device and applies the
// full configuration, including the timeout.
//
// It fails with ErrNoDevice when no device path is set and with
// ErrAlreadyOpen when the port is already open (the port stays open). If
// configuring the freshly acquired handle fails, the handle is released
// again and the port remains closed.
func (p *Port) Open() error {
	if p.config.Device == "" {
		return ErrNoDevice
	}
	if p.isOpen {
		return ErrAlreadyOpen
	}

	fd, err := openHandle(p.config.Device)
	if err != nil {
		return err
	}
	p.fd = fd

	if err := p.reconfigure(); err != nil {
		return err
	}

	p.isOpen = true
	return nil
}

// Close releases the OS handle. Closing an already-closed port is a no-op
// and succeeds, so Close is safe to call unconditionally (and via defer).
func (p *Port) Close() error {
	if !p.isOpen {
		return nil
	}

	var err error
	if p.fd != invalidHandle {
		err = closeHandle(p.fd)
		p.fd = invalidHandle
	}
	p.isOpen = false

	return err
}

// TryClone duplicates the port. When the port is open the OS handle is
// duplicated, so the clone and the original address the same physical
// device yet can be closed independently. The clone starts with a copy of
// the configuration and the open flag as of the moment of cloning; after
// that the two ports evolve independently.
//
// Reconfiguration through two clones is last-writer-wins at the device:
// the OS line settings are shared even though the Go values are not.
func (p *Port) TryClone() (*Port, error) {
	clone := &Port{
		fd:     invalidHandle,
		isOpen: p.isOpen,
		config: p.config,
	}

	if p.fd != invalidHandle {
		fd, err := dupHandle(p.fd)
		if err != nil {
			return nil, err
		}
		clone.fd = fd
	}

	runtime.SetFinalizer(clone, (*Port).discard)
	return clone, nil
}

// reconfigure pushes the entire stored Config onto the device in one batch.
// On failure the port force-closes so external state stays truthful; the
// device may be left partially reconfigured, which is exactly why the
// handle is not kept.
func (p *Port) reconfigure() error {
	if p.fd == invalidHandle {
		return ErrPortClosed
	}

	if err := applyToDevice(p.fd, p.config); err != nil {
		p.forceClose()
		return err
	}

	return nil
}

func (p *Port) forceClose() {
	if p.fd != invalidHandle {
		_ = closeHandle(p.fd)
		p.fd = invalidHandle
	}
	p.isOpen = false
}

// Device returns the configured device path.
func (p *Port) Device() string {
	return p.config.Device
}

// SetDevice switches the port to a different device. An open port is
// closed first and reopened on the new device afterwards. The stored path
// is updated even when the reopen fails, so a failed switch leaves a
// closed port already pointing at the new device.
func (p *Port) SetDevice(device string) error {
	wasOpen := p.isOpen
	if wasOpen {
		if err := p.Close(); err != nil {
			return err
		}
	}

	p.config.Device = device

	if wasOpen {
		return p.Open()
	}
	return nil
}

// BaudRate reads the current baud rate back from the device.
func (p *Port) BaudRate() (int, error) {
	if p.fd == invalidHandle {
		return 0, ErrPortClosed
	}
	return readBackBaudRate(p.fd)
}

// SetBaudRate stores the rate and, if the port is open, re-applies the
// configuration.
func (p *Port) SetBaudRate(rate int) error {
	p.config.BaudRate = rate
	if p.isOpen {
		return p.reconfigure()
	}
	return nil
}

// DataBits reads the character size back from the device.
func (p *Port) DataBits() (DataBits, error) {
	if p.fd == invalidHandle {
		return 0, ErrPortClosed
	}
	return readBackDataBits(p.fd)
}

// SetDataBits stores the character size and, if the port is open,
// re-applies the configuration.
func (p *Port) SetDataBits(bits DataBits) error {
	p.config.DataBits = bits
	if p.isOpen {
		return p.reconfigure()
	}
	return nil
}

// Parity reads the parity mode back from the device.
func (p *Port) Parity() (Parity, error) {
	if p.fd == invalidHandle {
		return 0, ErrPortClosed
	}
	return readBackParity(p.fd)
}

// SetParity stores the parity mode and, if the port is open, re-applies
// the configuration.
func (p *Port) SetParity(parity Parity) error {
	p.config.Parity = parity
	if p.isOpen {
		return p.reconfigure()
	}
	return nil
}

// StopBits reads the stop-bit setting back from the device.
func (p *Port) StopBits() (StopBits, error) {
	if p.fd == invalidHandle {
		return 0, ErrPortClosed
	}
	return readBackStopBits(p.fd)
}

// SetStopBits stores the stop-bit setting and, if the port is open,
// re-applies the configuration.
func (p *Port) SetStopBits(bits StopBits) error {
	p.config.StopBits = bits
	if p.isOpen {
		return p.reconfigure()
	}
	return nil
}

// FlowControl reads the flow-control mode back from the device.
//
// The read-back is lossy: if the hardware handshake flags are set the
// result is FlowControlHardware even when the XON/XOFF flags are also set,
// and only otherwise are the software flags consulted. A control block
// with both enabled (possible when another process configured the device)
// therefore reports Hardware.
func (p *Port) FlowControl() (FlowControl, error) {
	if p.fd == invalidHandle {
		return 0, ErrPortClosed
	}
	return readBackFlowControl(p.fd)
}

// SetFlowControl stores the flow-control mode and, if the port is open,
// re-applies the configuration.
func (p *Port) SetFlowControl(flow FlowControl) error {
	p.config.FlowControl = flow
	if p.isOpen {
		return p.reconfigure()
	}
	return nil
}

// Timeout returns the configured I/O timeout.
func (p *Port) Timeout() time.Duration {
	return p.config.Timeout
}

// SetTimeout stores the timeout for both reads and writes and, if the
// port is open, re-applies the configuration. Zero selects non-blocking
// mode; larger values are clamped to the platform maximum when applied.
func (p *Port) SetTimeout(timeout time.Duration) error {
	p.config.Timeout = timeout
	if p.isOpen {
		return p.reconfigure()
	}
	return nil
}

// Read reads up to len(buf) bytes from the device. It blocks for at most
// the configured timeout and fails with ErrTimeout when zero bytes were
// transferred within it. Note that this also turns a zero-length buf into
// ErrTimeout; the two cases are indistinguishable at this layer.
func (p *Port) Read(buf []byte) (int, error) {
	if !p.isOpen {
		return 0, ErrPortClosed
	}

	n, err := sysRead(p.fd, buf)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, ErrTimeout
	}
	return n, nil
}

// Write writes buf to the device. Partial writes are reported through the
// returned count, not as an error; callers needing the whole buffer on the
// wire must loop.
func (p *Port) Write(buf []byte) (int, error) {
	if !p.isOpen {
		return 0, ErrPortClosed
	}
	return sysWrite(p.fd, buf)
}

// Flush blocks until all output handed to the OS has been transmitted.
func (p *Port) Flush() error {
	if !p.isOpen {
		return ErrPortClosed
	}
	return drainOutput(p.fd)
}

// BytesToRead returns the number of received bytes waiting in the OS input
// queue, without consuming them.
func (p *Port) BytesToRead() (uint32, error) {
	if !p.isOpen {
		return 0, ErrPortClosed
	}
	return inputQueued(p.fd)
}

// BytesToWrite returns the number of bytes handed to the OS that have not
// been transmitted yet.
func (p *Port) BytesToWrite() (uint32, error) {
	if !p.isOpen {
		return 0, ErrPortClosed
	}
	return outputQueued(p.fd)
}

// Clear discards buffered bytes in the selected direction(s) and aborts
// whatever transfer the OS has pending there.
func (p *Port) Clear(buffer ClearBuffer) error {
	if !p.isOpen {
		return ErrPortClosed
	}
	return purgeQueues(p.fd, buffer)
}
