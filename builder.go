package comport

import "time"

// Builder accumulates a Config through chained setters and produces a
// Port. Building with a device path set opens the port immediately; an
// empty path yields a closed port that can be bound later with
// Port.SetDevice followed by Port.Open.
//
//	port, err := comport.New("/dev/ttyUSB0", 115200).
//		Parity(comport.ParityEven).
//		Timeout(time.Second).
//		Build()
type Builder struct {
	config Config
}

// NewBuilder returns a builder holding the default configuration
// (no device, 9600 8N1, no flow control, non-blocking).
func NewBuilder() *Builder {
	return &Builder{config: DefaultConfig()}
}

// New is shorthand for a builder pre-set with the two values almost every
// caller provides.
func New(device string, baudRate int) *Builder {
	return NewBuilder().Device(device).BaudRate(baudRate)
}

// Device sets the device path.
func (b *Builder) Device(device string) *Builder {
	b.config.Device = device
	return b
}

// BaudRate sets the baud rate in symbols per second.
func (b *Builder) BaudRate(rate int) *Builder {
	b.config.BaudRate = rate
	return b
}

// DataBits sets the number of data bits per character.
func (b *Builder) DataBits(bits DataBits) *Builder {
	b.config.DataBits = bits
	return b
}

// Parity sets the parity mode.
func (b *Builder) Parity(parity Parity) *Builder {
	b.config.Parity = parity
	return b
}

// StopBits sets the number of stop bits.
func (b *Builder) StopBits(bits StopBits) *Builder {
	b.config.StopBits = bits
	return b
}

// FlowControl sets the flow-control mode.
func (b *Builder) FlowControl(flow FlowControl) *Builder {
	b.config.FlowControl = flow
	return b
}

// Timeout sets the shared read/write timeout. Zero means non-blocking.
func (b *Builder) Timeout(timeout time.Duration) *Builder {
	b.config.Timeout = timeout
	return b
}

// WithConfig replaces the accumulated configuration wholesale.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// Config returns a snapshot of the accumulated configuration.
func (b *Builder) Config() Config {
	return b.config
}

// Build creates the Port. When a device path is set the port is opened and
// configured before Build returns; failure to do so fails the Build.
func (b *Builder) Build() (*Port, error) {
	return newPort(b.config)
}
