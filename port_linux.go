package comport

import (
	"errors"

	"golang.org/x/sys/unix"
)

// mapErrno translates raw OS errors into the package error taxonomy.
// Unclassified errnos pass through untouched.
func mapErrno(err error) error {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return err
	}

	switch errno {
	case unix.ENOENT, unix.ENXIO, unix.ENODEV:
		return ErrDeviceNotFound
	case unix.EACCES, unix.EPERM:
		return ErrPermissionDenied
	case unix.EBUSY:
		return ErrDeviceInUse
	case unix.EAGAIN:
		return ErrTimeout
	case unix.EBADF:
		return ErrPortClosed
	case unix.EINVAL:
		return ErrInvalidConfig
	default:
		return err
	}
}

func openHandle(device string) (int, error) {
	fd, err := unix.Open(device, unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return invalidHandle, mapErrno(err)
	}
	return fd, nil
}

func closeHandle(fd int) error {
	if err := unix.Close(fd); err != nil {
		return mapErrno(err)
	}
	return nil
}

// dupHandle duplicates the descriptor so a clone owns an independent handle
// to the same device.
func dupHandle(fd int) (int, error) {
	nfd, err := unix.Dup(fd)
	if err != nil {
		return invalidHandle, mapErrno(err)
	}
	return nfd, nil
}

// applyToDevice reads the current termios image, rewrites it from cfg and
// commits it with a single TCSETS. A failed commit may leave the device
// partially updated; the caller force-closes in that case.
func applyToDevice(fd int, cfg Config) error {
	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return mapErrno(err)
	}

	if err := applyConfig(tio, cfg); err != nil {
		return err
	}

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, tio); err != nil {
		return mapErrno(err)
	}
	return nil
}

func getTermios(fd int) (*unix.Termios, error) {
	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, mapErrno(err)
	}
	return tio, nil
}

func readBackBaudRate(fd int) (int, error) {
	tio, err := getTermios(fd)
	if err != nil {
		return 0, err
	}
	return readBaudRate(tio)
}

func readBackDataBits(fd int) (DataBits, error) {
	tio, err := getTermios(fd)
	if err != nil {
		return 0, err
	}
	return readDataBits(tio)
}

func readBackParity(fd int) (Parity, error) {
	tio, err := getTermios(fd)
	if err != nil {
		return 0, err
	}
	return readParity(tio)
}

func readBackStopBits(fd int) (StopBits, error) {
	tio, err := getTermios(fd)
	if err != nil {
		return 0, err
	}
	return readStopBits(tio)
}

func readBackFlowControl(fd int) (FlowControl, error) {
	tio, err := getTermios(fd)
	if err != nil {
		return 0, err
	}
	return readFlowControl(tio), nil
}

func sysRead(fd int, buf []byte) (int, error) {
	n, err := unix.Read(fd, buf)
	if err != nil {
		return 0, mapErrno(err)
	}
	return n, nil
}

func sysWrite(fd int, buf []byte) (int, error) {
	n, err := unix.Write(fd, buf)
	if err != nil {
		return 0, mapErrno(err)
	}
	return n, nil
}

// drainOutput blocks until the transmit queue has gone out on the wire.
func drainOutput(fd int) error {
	if err := unix.IoctlSetInt(fd, unix.TCSBRK, 1); err != nil {
		return mapErrno(err)
	}
	return nil
}

// purgeQueues discards queued bytes and aborts pending transfers in the
// selected direction(s).
func purgeQueues(fd int, buffer ClearBuffer) error {
	var queue int
	switch buffer {
	case ClearInput:
		queue = unix.TCIFLUSH
	case ClearOutput:
		queue = unix.TCOFLUSH
	case ClearAll:
		queue = unix.TCIOFLUSH
	default:
		return ErrInvalidConfig
	}

	if err := unix.IoctlSetInt(fd, unix.TCFLSH, queue); err != nil {
		return mapErrno(err)
	}
	return nil
}

func inputQueued(fd int) (uint32, error) {
	n, err := unix.IoctlGetInt(fd, unix.TIOCINQ)
	if err != nil {
		return 0, mapErrno(err)
	}
	return uint32(n), nil
}

func outputQueued(fd int) (uint32, error) {
	n, err := unix.IoctlGetInt(fd, unix.TIOCOUTQ)
	if err != nil {
		return 0, mapErrno(err)
	}
	return uint32(n), nil
}
