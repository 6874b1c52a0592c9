package comport

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestApplyConfigRawMode(t *testing.T) {
	// Start from a dirty image to verify every mode field is rewritten.
	tio := &unix.Termios{
		Iflag: unix.ICRNL | unix.IXON,
		Oflag: unix.OPOST,
		Lflag: unix.ICANON | unix.ECHO | unix.ISIG,
	}

	if err := applyConfig(tio, DefaultConfig()); err != nil {
		t.Fatalf("applyConfig failed: %v", err)
	}

	if tio.Cflag&unix.CREAD == 0 || tio.Cflag&unix.CLOCAL == 0 {
		t.Errorf("Cflag = %#x, expected CREAD|CLOCAL set", tio.Cflag)
	}
	if tio.Oflag != 0 {
		t.Errorf("Oflag = %#x, expected 0", tio.Oflag)
	}
	if tio.Lflag != 0 {
		t.Errorf("Lflag = %#x, expected 0", tio.Lflag)
	}
	if tio.Iflag != 0 {
		t.Errorf("Iflag = %#x, expected 0 for no flow control", tio.Iflag)
	}
}

func TestBaudRateRoundTrip(t *testing.T) {
	rates := []int{300, 9600, 19200, 115200, 921600, 4000000}

	for _, rate := range rates {
		tio := &unix.Termios{}
		if err := applyBaudRate(tio, rate); err != nil {
			t.Errorf("applyBaudRate(%d) failed: %v", rate, err)
			continue
		}
		got, err := readBaudRate(tio)
		if err != nil {
			t.Errorf("readBaudRate after %d failed: %v", rate, err)
			continue
		}
		if got != rate {
			t.Errorf("baud rate round trip = %d, expected %d", got, rate)
		}
	}
}

func TestApplyBaudRateInvalid(t *testing.T) {
	tio := &unix.Termios{}
	for _, rate := range []int{0, -1, 9601, 128000} {
		if err := applyBaudRate(tio, rate); !errors.Is(err, ErrInvalidBaud) {
			t.Errorf("applyBaudRate(%d) = %v, expected ErrInvalidBaud", rate, err)
		}
	}
}

func TestDataBitsRoundTrip(t *testing.T) {
	for _, bits := range []DataBits{DataBits5, DataBits6, DataBits7, DataBits8} {
		tio := &unix.Termios{}
		if err := applyDataBits(tio, bits); err != nil {
			t.Fatalf("applyDataBits(%v) failed: %v", bits, err)
		}
		got, err := readDataBits(tio)
		if err != nil {
			t.Fatalf("readDataBits after %v failed: %v", bits, err)
		}
		if got != bits {
			t.Errorf("data bits round trip = %v, expected %v", got, bits)
		}
	}

	tio := &unix.Termios{}
	if err := applyDataBits(tio, DataBits(9)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("applyDataBits(9) = %v, expected ErrInvalidConfig", err)
	}
}

func TestStopBitsRoundTrip(t *testing.T) {
	for _, bits := range []StopBits{StopBitsOne, StopBitsTwo} {
		tio := &unix.Termios{}
		if err := applyStopBits(tio, bits); err != nil {
			t.Fatalf("applyStopBits(%v) failed: %v", bits, err)
		}
		got, err := readStopBits(tio)
		if err != nil {
			t.Fatalf("readStopBits after %v failed: %v", bits, err)
		}
		if got != bits {
			t.Errorf("stop bits round trip = %v, expected %v", got, bits)
		}
	}
}

func TestStopBitsOnePointFiveRejected(t *testing.T) {
	tio := &unix.Termios{}
	if err := applyStopBits(tio, StopBitsOnePointFive); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("applyStopBits(1.5) = %v, expected ErrInvalidConfig", err)
	}
}

func TestParityRoundTrip(t *testing.T) {
	parities := []Parity{ParityNone, ParityOdd, ParityEven, ParityMark, ParitySpace}

	for _, parity := range parities {
		// Dirty flags from a previous setting must not leak through.
		tio := &unix.Termios{Cflag: unix.PARENB | unix.PARODD | unix.CMSPAR}
		if err := applyParity(tio, parity); err != nil {
			t.Fatalf("applyParity(%v) failed: %v", parity, err)
		}
		got, err := readParity(tio)
		if err != nil {
			t.Fatalf("readParity after %v failed: %v", parity, err)
		}
		if got != parity {
			t.Errorf("parity round trip = %v, expected %v", got, parity)
		}
	}
}

func TestFlowControlRoundTrip(t *testing.T) {
	for _, flow := range []FlowControl{FlowControlNone, FlowControlSoftware, FlowControlHardware} {
		tio := &unix.Termios{}
		if err := applyFlowControl(tio, flow); err != nil {
			t.Fatalf("applyFlowControl(%v) failed: %v", flow, err)
		}
		if got := readFlowControl(tio); got != flow {
			t.Errorf("flow control round trip = %v, expected %v", got, flow)
		}
	}
}

func TestFlowControlReadBackPriority(t *testing.T) {
	// Another configurator may enable both handshakes at once. Hardware
	// wins the read-back.
	tio := &unix.Termios{
		Cflag: unix.CRTSCTS,
		Iflag: unix.IXON | unix.IXOFF,
	}
	if got := readFlowControl(tio); got != FlowControlHardware {
		t.Errorf("readFlowControl(both) = %v, expected hardware", got)
	}

	// XON alone is enough to report software.
	tio = &unix.Termios{Iflag: unix.IXON}
	if got := readFlowControl(tio); got != FlowControlSoftware {
		t.Errorf("readFlowControl(IXON) = %v, expected software", got)
	}
}

func TestApplyFlowControlClearsOppositeFlags(t *testing.T) {
	tio := &unix.Termios{
		Cflag: unix.CRTSCTS,
		Iflag: unix.IXON | unix.IXOFF | unix.IXANY,
	}
	if err := applyFlowControl(tio, FlowControlNone); err != nil {
		t.Fatalf("applyFlowControl(none) failed: %v", err)
	}
	if tio.Cflag&unix.CRTSCTS != 0 {
		t.Error("CRTSCTS still set after disabling flow control")
	}
	if tio.Iflag&(unix.IXON|unix.IXOFF|unix.IXANY) != 0 {
		t.Errorf("software flags still set after disabling flow control: %#x", tio.Iflag)
	}
}

func TestApplyTimeout(t *testing.T) {
	tests := []struct {
		timeout time.Duration
		vtime   uint8
	}{
		{0, 0},                          // non-blocking
		{time.Millisecond, 1},           // rounds up to one decisecond
		{100 * time.Millisecond, 1},     // exact decisecond
		{250 * time.Millisecond, 3},     // rounds up
		{time.Second, 10},               // whole seconds
		{25500 * time.Millisecond, 255}, // platform maximum
		{time.Minute, 255},              // clamps instead of wrapping
	}

	for _, tt := range tests {
		tio := &unix.Termios{}
		applyTimeout(tio, tt.timeout)
		if tio.Cc[unix.VMIN] != 0 {
			t.Errorf("timeout %v: VMIN = %d, expected 0", tt.timeout, tio.Cc[unix.VMIN])
		}
		if tio.Cc[unix.VTIME] != tt.vtime {
			t.Errorf("timeout %v: VTIME = %d, expected %d", tt.timeout, tio.Cc[unix.VTIME], tt.vtime)
		}
	}
}
