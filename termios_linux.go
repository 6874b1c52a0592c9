package comport

import (
	"time"

	"golang.org/x/sys/unix"
)

// The termios image is this platform's device control block: the translator
// below maps Config fields onto it and back. All functions here are pure;
// committing the image to the device is the backend's job.

// baudRates maps portable baud rates to their termios encoding.
var baudRates = map[int]uint32{
	50:      unix.B50,
	75:      unix.B75,
	110:     unix.B110,
	134:     unix.B134,
	150:     unix.B150,
	200:     unix.B200,
	300:     unix.B300,
	600:     unix.B600,
	1200:    unix.B1200,
	1800:    unix.B1800,
	2400:    unix.B2400,
	4800:    unix.B4800,
	9600:    unix.B9600,
	19200:   unix.B19200,
	38400:   unix.B38400,
	57600:   unix.B57600,
	115200:  unix.B115200,
	230400:  unix.B230400,
	460800:  unix.B460800,
	500000:  unix.B500000,
	576000:  unix.B576000,
	921600:  unix.B921600,
	1000000: unix.B1000000,
	1152000: unix.B1152000,
	1500000: unix.B1500000,
	2000000: unix.B2000000,
	2500000: unix.B2500000,
	3000000: unix.B3000000,
	3500000: unix.B3500000,
	4000000: unix.B4000000,
}

// maxTimeout is the largest timeout termios can express: VTIME counts
// deciseconds in a single byte. Longer timeouts clamp to this.
const maxTimeout = 255 * 100 * time.Millisecond

// applyConfig rewrites the termios image from cfg in one batch: raw mode,
// then baud rate, data bits, stop bits, parity, flow control and finally
// the timeout bytes. The image is not committed here.
func applyConfig(tio *unix.Termios, cfg Config) error {
	// Raw mode. No line editing, no character translation, receiver
	// enabled, modem status lines ignored.
	tio.Cflag = unix.CREAD | unix.CLOCAL
	tio.Iflag = 0
	tio.Oflag = 0
	tio.Lflag = 0

	if err := applyBaudRate(tio, cfg.BaudRate); err != nil {
		return err
	}
	if err := applyDataBits(tio, cfg.DataBits); err != nil {
		return err
	}
	if err := applyStopBits(tio, cfg.StopBits); err != nil {
		return err
	}
	if err := applyParity(tio, cfg.Parity); err != nil {
		return err
	}
	if err := applyFlowControl(tio, cfg.FlowControl); err != nil {
		return err
	}

	applyTimeout(tio, cfg.Timeout)
	return nil
}

func applyBaudRate(tio *unix.Termios, rate int) error {
	code, ok := baudRates[rate]
	if !ok {
		return ErrInvalidBaud
	}

	tio.Cflag = (tio.Cflag &^ unix.CBAUD) | code
	tio.Ispeed = code
	tio.Ospeed = code
	return nil
}

func readBaudRate(tio *unix.Termios) (int, error) {
	code := tio.Cflag & unix.CBAUD
	for rate, c := range baudRates {
		if c == code {
			return rate, nil
		}
	}
	return 0, ErrInvalidData
}

func applyDataBits(tio *unix.Termios, bits DataBits) error {
	tio.Cflag &^= unix.CSIZE
	switch bits {
	case DataBits5:
		tio.Cflag |= unix.CS5
	case DataBits6:
		tio.Cflag |= unix.CS6
	case DataBits7:
		tio.Cflag |= unix.CS7
	case DataBits8:
		tio.Cflag |= unix.CS8
	default:
		return ErrInvalidConfig
	}
	return nil
}

func readDataBits(tio *unix.Termios) (DataBits, error) {
	switch tio.Cflag & unix.CSIZE {
	case unix.CS5:
		return DataBits5, nil
	case unix.CS6:
		return DataBits6, nil
	case unix.CS7:
		return DataBits7, nil
	case unix.CS8:
		return DataBits8, nil
	default:
		return 0, ErrInvalidData
	}
}

func applyStopBits(tio *unix.Termios, bits StopBits) error {
	switch bits {
	case StopBitsOne:
		tio.Cflag &^= unix.CSTOPB
	case StopBitsTwo:
		tio.Cflag |= unix.CSTOPB
	case StopBitsOnePointFive:
		// termios has a single stop-bit flag; 1.5 cannot be expressed.
		return ErrInvalidConfig
	default:
		return ErrInvalidConfig
	}
	return nil
}

func readStopBits(tio *unix.Termios) (StopBits, error) {
	if tio.Cflag&unix.CSTOPB != 0 {
		return StopBitsTwo, nil
	}
	return StopBitsOne, nil
}

func applyParity(tio *unix.Termios, parity Parity) error {
	tio.Cflag &^= unix.PARENB | unix.PARODD | unix.CMSPAR
	switch parity {
	case ParityNone:
	case ParityOdd:
		tio.Cflag |= unix.PARENB | unix.PARODD
	case ParityEven:
		tio.Cflag |= unix.PARENB
	case ParityMark:
		tio.Cflag |= unix.PARENB | unix.CMSPAR | unix.PARODD
	case ParitySpace:
		tio.Cflag |= unix.PARENB | unix.CMSPAR
	default:
		return ErrInvalidConfig
	}
	return nil
}

func readParity(tio *unix.Termios) (Parity, error) {
	if tio.Cflag&unix.PARENB == 0 {
		return ParityNone, nil
	}
	if tio.Cflag&unix.CMSPAR != 0 {
		if tio.Cflag&unix.PARODD != 0 {
			return ParityMark, nil
		}
		return ParitySpace, nil
	}
	if tio.Cflag&unix.PARODD != 0 {
		return ParityOdd, nil
	}
	return ParityEven, nil
}

func applyFlowControl(tio *unix.Termios, flow FlowControl) error {
	switch flow {
	case FlowControlNone:
		tio.Cflag &^= unix.CRTSCTS
		tio.Iflag &^= unix.IXON | unix.IXOFF | unix.IXANY
	case FlowControlSoftware:
		tio.Cflag &^= unix.CRTSCTS
		tio.Iflag |= unix.IXON | unix.IXOFF
	case FlowControlHardware:
		tio.Cflag |= unix.CRTSCTS
		tio.Iflag &^= unix.IXON | unix.IXOFF | unix.IXANY
	default:
		return ErrInvalidConfig
	}
	return nil
}

// readFlowControl maps the handshake flags back onto a FlowControl value.
// The mapping is lossy: hardware handshake wins over XON/XOFF when another
// configurator enabled both, so such a control block reads back as
// FlowControlHardware.
func readFlowControl(tio *unix.Termios) FlowControl {
	if tio.Cflag&unix.CRTSCTS != 0 {
		return FlowControlHardware
	}
	if tio.Iflag&(unix.IXON|unix.IXOFF) != 0 {
		return FlowControlSoftware
	}
	return FlowControlNone
}

// applyTimeout encodes the shared read/write timeout. Zero keeps VTIME at
// zero so reads poll and return immediately; positive values round up to
// the next decisecond and clamp at maxTimeout instead of wrapping the
// single VTIME byte.
func applyTimeout(tio *unix.Termios, timeout time.Duration) {
	deciseconds := int64(0)
	if timeout > 0 {
		if timeout > maxTimeout {
			timeout = maxTimeout
		}
		deciseconds = (timeout.Milliseconds() + 99) / 100
		if deciseconds < 1 {
			deciseconds = 1
		}
	}

	tio.Cc[unix.VMIN] = 0
	tio.Cc[unix.VTIME] = uint8(deciseconds)
}
