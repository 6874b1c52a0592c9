package comport

import "golang.org/x/sys/unix"

// ModemSignals represents modem control signal states
type ModemSignals struct {
	CTS bool // Clear To Send
	DSR bool // Data Set Ready
	RI  bool // Ring Indicator
	DCD bool // Data Carrier Detect
	RTS bool // Request To Send
	DTR bool // Data Terminal Ready
}

// Signals returns the current state of all modem control signals.
func (p *Port) Signals() (ModemSignals, error) {
	if !p.isOpen {
		return ModemSignals{}, ErrPortClosed
	}

	status, err := unix.IoctlGetInt(p.fd, unix.TIOCMGET)
	if err != nil {
		return ModemSignals{}, mapErrno(err)
	}

	return ModemSignals{
		CTS: status&unix.TIOCM_CTS != 0,
		DSR: status&unix.TIOCM_DSR != 0,
		RI:  status&unix.TIOCM_RI != 0,
		DCD: status&unix.TIOCM_CAR != 0,
		RTS: status&unix.TIOCM_RTS != 0,
		DTR: status&unix.TIOCM_DTR != 0,
	}, nil
}

// SetRTS asserts or deasserts the RTS line. Only meaningful without
// hardware flow control, where the driver owns RTS.
func (p *Port) SetRTS(state bool) error {
	if !p.isOpen {
		return ErrPortClosed
	}
	return setModemBit(p.fd, unix.TIOCM_RTS, state)
}

// SetDTR asserts or deasserts the DTR line.
func (p *Port) SetDTR(state bool) error {
	if !p.isOpen {
		return ErrPortClosed
	}
	return setModemBit(p.fd, unix.TIOCM_DTR, state)
}

func setModemBit(fd, bit int, state bool) error {
	req := uint(unix.TIOCMBIC)
	if state {
		req = unix.TIOCMBIS
	}
	if err := unix.IoctlSetPointerInt(fd, req, bit); err != nil {
		return mapErrno(err)
	}
	return nil
}
