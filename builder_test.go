package comport

import (
	"testing"
	"time"
)

func TestBuilderDefaults(t *testing.T) {
	cfg := NewBuilder().Config()
	if cfg != DefaultConfig() {
		t.Errorf("NewBuilder().Config() = %+v, expected defaults", cfg)
	}
}

func TestBuilderChaining(t *testing.T) {
	cfg := NewBuilder().
		Device("/dev/ttyUSB3").
		BaudRate(115200).
		DataBits(DataBits7).
		Parity(ParityEven).
		StopBits(StopBitsTwo).
		FlowControl(FlowControlHardware).
		Timeout(2 * time.Second).
		Config()

	expected := Config{
		Device:      "/dev/ttyUSB3",
		BaudRate:    115200,
		DataBits:    DataBits7,
		Parity:      ParityEven,
		StopBits:    StopBitsTwo,
		FlowControl: FlowControlHardware,
		Timeout:     2 * time.Second,
	}
	if cfg != expected {
		t.Errorf("chained config = %+v, expected %+v", cfg, expected)
	}
}

func TestNewShorthand(t *testing.T) {
	cfg := New("/dev/ttyACM0", 57600).Config()
	if cfg.Device != "/dev/ttyACM0" {
		t.Errorf("Device = %q, expected /dev/ttyACM0", cfg.Device)
	}
	if cfg.BaudRate != 57600 {
		t.Errorf("BaudRate = %d, expected 57600", cfg.BaudRate)
	}
	// Everything else stays at defaults.
	if cfg.DataBits != DataBits8 || cfg.Parity != ParityNone {
		t.Errorf("shorthand disturbed defaults: %+v", cfg)
	}
}

func TestBuilderWithConfig(t *testing.T) {
	custom := Config{
		Device:   "/dev/ttyS0",
		BaudRate: 1200,
		DataBits: DataBits7,
		Parity:   ParityOdd,
		StopBits: StopBitsTwo,
	}
	cfg := NewBuilder().BaudRate(9600).WithConfig(custom).Config()
	if cfg != custom {
		t.Errorf("WithConfig() = %+v, expected %+v", cfg, custom)
	}
}

func TestBuildWithoutDevice(t *testing.T) {
	// No device path means Build returns a closed, unbound port.
	port, err := NewBuilder().Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if port.IsOpen() {
		t.Error("port without a device should be closed")
	}
	if port.Device() != "" {
		t.Errorf("Device() = %q, expected empty", port.Device())
	}

	if err := port.Open(); err != ErrNoDevice {
		t.Errorf("Open() = %v, expected ErrNoDevice", err)
	}
}
