package comport

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Device != "" {
		t.Errorf("Device = %q, expected empty", cfg.Device)
	}
	if cfg.BaudRate != 9600 {
		t.Errorf("BaudRate = %d, expected 9600", cfg.BaudRate)
	}
	if cfg.DataBits != DataBits8 {
		t.Errorf("DataBits = %v, expected 8", cfg.DataBits)
	}
	if cfg.Parity != ParityNone {
		t.Errorf("Parity = %v, expected none", cfg.Parity)
	}
	if cfg.StopBits != StopBitsOne {
		t.Errorf("StopBits = %v, expected 1", cfg.StopBits)
	}
	if cfg.FlowControl != FlowControlNone {
		t.Errorf("FlowControl = %v, expected none", cfg.FlowControl)
	}
	if cfg.Timeout != 0 {
		t.Errorf("Timeout = %v, expected 0", cfg.Timeout)
	}
}

func TestConfigIsAValue(t *testing.T) {
	// Copies must be independent.
	a := DefaultConfig()
	b := a
	b.BaudRate = 115200
	b.Timeout = time.Second

	if a.BaudRate != 9600 || a.Timeout != 0 {
		t.Errorf("mutating a copy changed the original: %+v", a)
	}
	if a == b {
		t.Error("configs with different values compared equal")
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		value    interface{ String() string }
		expected string
	}{
		{DataBits5, "5"},
		{DataBits8, "8"},
		{ParityNone, "none"},
		{ParityOdd, "odd"},
		{ParityEven, "even"},
		{ParityMark, "mark"},
		{ParitySpace, "space"},
		{StopBitsOne, "1"},
		{StopBitsOnePointFive, "1.5"},
		{StopBitsTwo, "2"},
		{FlowControlNone, "none"},
		{FlowControlSoftware, "software"},
		{FlowControlHardware, "hardware"},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.expected {
			t.Errorf("%T.String() = %q, expected %q", tt.value, got, tt.expected)
		}
	}
}

func TestParityUnmarshalText(t *testing.T) {
	tests := []struct {
		text     string
		expected Parity
	}{
		{"none", ParityNone},
		{"n", ParityNone},
		{"odd", ParityOdd},
		{"o", ParityOdd},
		{"even", ParityEven},
		{"e", ParityEven},
		{"mark", ParityMark},
		{"space", ParitySpace},
	}

	for _, tt := range tests {
		var p Parity
		if err := p.UnmarshalText([]byte(tt.text)); err != nil {
			t.Errorf("UnmarshalText(%q) failed: %v", tt.text, err)
			continue
		}
		if p != tt.expected {
			t.Errorf("UnmarshalText(%q) = %v, expected %v", tt.text, p, tt.expected)
		}
	}

	var p Parity
	err := p.UnmarshalText([]byte("bogus"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("UnmarshalText(bogus) = %v, expected ErrInvalidConfig", err)
	}
}

func TestFlowControlUnmarshalText(t *testing.T) {
	tests := []struct {
		text     string
		expected FlowControl
	}{
		{"none", FlowControlNone},
		{"software", FlowControlSoftware},
		{"xonxoff", FlowControlSoftware},
		{"hardware", FlowControlHardware},
		{"rtscts", FlowControlHardware},
	}

	for _, tt := range tests {
		var f FlowControl
		if err := f.UnmarshalText([]byte(tt.text)); err != nil {
			t.Errorf("UnmarshalText(%q) failed: %v", tt.text, err)
			continue
		}
		if f != tt.expected {
			t.Errorf("UnmarshalText(%q) = %v, expected %v", tt.text, f, tt.expected)
		}
	}
}

func TestStopBitsUnmarshalText(t *testing.T) {
	var s StopBits
	if err := s.UnmarshalText([]byte("1.5")); err != nil {
		t.Fatalf("UnmarshalText(1.5) failed: %v", err)
	}
	if s != StopBitsOnePointFive {
		t.Errorf("UnmarshalText(1.5) = %v, expected 1.5", s)
	}

	if err := s.UnmarshalText([]byte("3")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("UnmarshalText(3) = %v, expected ErrInvalidConfig", err)
	}
}

func TestMarshalTextRejectsOutOfRange(t *testing.T) {
	if _, err := DataBits(9).MarshalText(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("DataBits(9).MarshalText() = %v, expected ErrInvalidConfig", err)
	}
	if _, err := Parity(42).MarshalText(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Parity(42).MarshalText() = %v, expected ErrInvalidConfig", err)
	}
}
