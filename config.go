package comport

import (
	"fmt"
	"time"
)

// DataBits is the number of bits used to represent a character on the line.
type DataBits int

const (
	DataBits5 DataBits = 5
	DataBits6 DataBits = 6
	DataBits7 DataBits = 7
	DataBits8 DataBits = 8
)

func (d DataBits) String() string {
	switch d {
	case DataBits5, DataBits6, DataBits7, DataBits8:
		return fmt.Sprintf("%d", int(d))
	default:
		return fmt.Sprintf("DataBits(%d)", int(d))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d DataBits) MarshalText() ([]byte, error) {
	switch d {
	case DataBits5, DataBits6, DataBits7, DataBits8:
		return []byte(d.String()), nil
	default:
		return nil, ErrInvalidConfig
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DataBits) UnmarshalText(text []byte) error {
	switch string(text) {
	case "5":
		*d = DataBits5
	case "6":
		*d = DataBits6
	case "7":
		*d = DataBits7
	case "8":
		*d = DataBits8
	default:
		return fmt.Errorf("invalid data bits %q: %w", text, ErrInvalidConfig)
	}
	return nil
}

// Parity is the error-detection bit appended to each character.
type Parity int

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
	ParityMark
	ParitySpace
)

func (p Parity) String() string {
	switch p {
	case ParityNone:
		return "none"
	case ParityOdd:
		return "odd"
	case ParityEven:
		return "even"
	case ParityMark:
		return "mark"
	case ParitySpace:
		return "space"
	default:
		return fmt.Sprintf("Parity(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Parity) MarshalText() ([]byte, error) {
	switch p {
	case ParityNone, ParityOdd, ParityEven, ParityMark, ParitySpace:
		return []byte(p.String()), nil
	default:
		return nil, ErrInvalidConfig
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Parity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none", "n":
		*p = ParityNone
	case "odd", "o":
		*p = ParityOdd
	case "even", "e":
		*p = ParityEven
	case "mark", "m":
		*p = ParityMark
	case "space", "s":
		*p = ParitySpace
	default:
		return fmt.Errorf("invalid parity %q: %w", text, ErrInvalidConfig)
	}
	return nil
}

// StopBits is the number of bits used to signal the end of a character.
type StopBits int

const (
	StopBitsOne StopBits = iota
	StopBitsOnePointFive
	StopBitsTwo
)

func (s StopBits) String() string {
	switch s {
	case StopBitsOne:
		return "1"
	case StopBitsOnePointFive:
		return "1.5"
	case StopBitsTwo:
		return "2"
	default:
		return fmt.Sprintf("StopBits(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s StopBits) MarshalText() ([]byte, error) {
	switch s {
	case StopBitsOne, StopBitsOnePointFive, StopBitsTwo:
		return []byte(s.String()), nil
	default:
		return nil, ErrInvalidConfig
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *StopBits) UnmarshalText(text []byte) error {
	switch string(text) {
	case "1":
		*s = StopBitsOne
	case "1.5":
		*s = StopBitsOnePointFive
	case "2":
		*s = StopBitsTwo
	default:
		return fmt.Errorf("invalid stop bits %q: %w", text, ErrInvalidConfig)
	}
	return nil
}

// FlowControl is the signalling used to pause and resume transmission.
type FlowControl int

const (
	// FlowControlNone disables flow control entirely.
	FlowControlNone FlowControl = iota
	// FlowControlSoftware uses in-band XON/XOFF bytes.
	FlowControlSoftware
	// FlowControlHardware uses the RTS/CTS handshake lines.
	FlowControlHardware
)

func (f FlowControl) String() string {
	switch f {
	case FlowControlNone:
		return "none"
	case FlowControlSoftware:
		return "software"
	case FlowControlHardware:
		return "hardware"
	default:
		return fmt.Sprintf("FlowControl(%d)", int(f))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f FlowControl) MarshalText() ([]byte, error) {
	switch f {
	case FlowControlNone, FlowControlSoftware, FlowControlHardware:
		return []byte(f.String()), nil
	default:
		return nil, ErrInvalidConfig
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FlowControl) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none":
		*f = FlowControlNone
	case "software", "xonxoff":
		*f = FlowControlSoftware
	case "hardware", "rtscts":
		*f = FlowControlHardware
	default:
		return fmt.Errorf("invalid flow control %q: %w", text, ErrInvalidConfig)
	}
	return nil
}

// ClearBuffer selects which direction Port.Clear discards.
type ClearBuffer int

const (
	ClearInput ClearBuffer = iota
	ClearOutput
	ClearAll
)

// Config holds the full line-control state of a serial port.
//
// A Config is a plain value: it can be copied, compared and mutated freely.
// The Port keeps its own Config as the source of truth and projects it onto
// the OS whenever the port is open; while closed the stored values simply
// wait for the next Open.
type Config struct {
	// Device is the OS device path, e.g. /dev/ttyUSB0. Empty means the
	// port is not bound to any device yet.
	Device string `mapstructure:"device"`
	// BaudRate in symbols per second. Only rates the OS knows are accepted.
	BaudRate int `mapstructure:"baud"`
	// DataBits per character (5-8).
	DataBits DataBits `mapstructure:"data-bits"`
	// Parity mode for error detection.
	Parity Parity `mapstructure:"parity"`
	// StopBits terminating each character.
	StopBits StopBits `mapstructure:"stop-bits"`
	// FlowControl signalling.
	FlowControl FlowControl `mapstructure:"flow-control"`
	// Timeout bounds both reads and writes. Zero selects non-blocking
	// mode: reads return ErrTimeout immediately when no data is waiting.
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns the 9600 8N1 configuration with no flow control and
// a zero (non-blocking) timeout.
func DefaultConfig() Config {
	return Config{
		BaudRate:    9600,
		DataBits:    DataBits8,
		Parity:      ParityNone,
		StopBits:    StopBitsOne,
		FlowControl: FlowControlNone,
		Timeout:     0,
	}
}
