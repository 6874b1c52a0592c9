package models

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/comportlabs/comport"
	"github.com/comportlabs/comport/internal/tui/components"
)

// InputMode is the vim-style mode of the session UI.
type InputMode int

const (
	InputModeNormal InputMode = iota
	InputModeInsert
)

func (m InputMode) String() string {
	if m == InputModeInsert {
		return "INSERT"
	}
	return "NORMAL"
}

// ConnectionStatusMsg reports the outcome of the background connect.
type ConnectionStatusMsg struct {
	Connected bool
	Error     error
}

// readPollInterval is the port timeout the reader goroutine uses; it
// bounds how long shutdown waits for a blocked read.
const readPollInterval = 200 * time.Millisecond

// Session owns the serial connection behind a TUI. A Port does no
// internal locking, so the session gives the reader goroutine its own
// clone of the port and keeps the original for writes; the mutex only
// guards the Go-side pointers.
type Session struct {
	portPath string
	port     *comport.Port

	connected bool
	messages  []components.DataMsg
	err       error
	ready     bool

	inputMode InputMode

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.RWMutex
}

func NewSession(portPath string) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	return &Session{
		portPath:  portPath,
		messages:  make([]components.DataMsg, 0),
		inputMode: InputModeNormal,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (s *Session) PortPath() string {
	return s.portPath
}

// Connect opens the port and starts the reader goroutine. Received
// chunks are delivered through the send callback, typically bound to
// tea.Program.Send.
func (s *Session) Connect(config comport.Config, send func(msg tea.Msg)) error {
	config.Device = s.portPath
	config.Timeout = readPollInterval

	port, err := comport.NewBuilder().WithConfig(config).Build()
	if err != nil {
		return err
	}

	reader, err := port.TryClone()
	if err != nil {
		port.Close()
		return err
	}

	s.mu.Lock()
	s.port = port
	s.mu.Unlock()

	go s.readLoop(reader, send)
	return nil
}

func (s *Session) readLoop(reader *comport.Port, send func(msg tea.Msg)) {
	defer reader.Close()

	buffer := make([]byte, 4096)
	for {
		if s.ctx.Err() != nil {
			return
		}

		n, err := reader.Read(buffer)
		if err != nil {
			if errors.Is(err, comport.ErrTimeout) {
				continue
			}
			if s.ctx.Err() != nil {
				return
			}
			send(ConnectionStatusMsg{Connected: false, Error: err})
			return
		}

		data := make([]byte, n)
		copy(data, buffer[:n])
		send(components.DataMsg{
			Timestamp: time.Now(),
			Data:      data,
		})
	}
}

// Write sends a payload on the session's write handle.
func (s *Session) Write(data []byte) error {
	s.mu.RLock()
	port := s.port
	s.mu.RUnlock()

	if port == nil {
		return comport.ErrPortClosed
	}

	for len(data) > 0 {
		n, err := port.Write(data)
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

func (s *Session) IsConnected() bool {
	return s.connected
}

func (s *Session) SetConnected(connected bool) {
	s.connected = connected
}

func (s *Session) Error() error {
	return s.err
}

func (s *Session) SetError(err error) {
	s.err = err
}

func (s *Session) IsReady() bool {
	return s.ready
}

func (s *Session) SetReady(ready bool) {
	s.ready = ready
}

func (s *Session) Messages() []components.DataMsg {
	return s.messages
}

func (s *Session) AddMessage(msg components.DataMsg) {
	s.messages = append(s.messages, msg)
}

func (s *Session) ClearMessages() {
	s.messages = make([]components.DataMsg, 0)
}

func (s *Session) GetInputMode() InputMode {
	return s.inputMode
}

func (s *Session) SetInputMode(mode InputMode) {
	s.inputMode = mode
}

func (s *Session) IsInInsertMode() bool {
	return s.inputMode == InputModeInsert
}

func (s *Session) Context() context.Context {
	return s.ctx
}

// Cleanup stops the reader and closes the write handle.
func (s *Session) Cleanup() {
	s.cancel()

	s.mu.Lock()
	if s.port != nil {
		s.port.Close()
		s.port = nil
	}
	s.mu.Unlock()
}
