package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Transcript is the scrolling log of line traffic backed by a viewport.
type Transcript struct {
	viewport  viewport.Model
	formatter *DataFormatter
	lines     []string
}

func NewTranscript(width, height int) *Transcript {
	return &Transcript{
		viewport:  viewport.New(width, height),
		formatter: NewDataFormatter(true, true),
		lines:     make([]string, 0),
	}
}

func (t *Transcript) SetSize(width, height int) {
	t.viewport.Width = width
	t.viewport.Height = height
}

func (t *Transcript) Width() int {
	return t.viewport.Width
}

func (t *Transcript) SetShowTimestamps(show bool) {
	t.formatter.SetShowTimestamps(show)
}

func (t *Transcript) AddMessage(msg DataMsg) {
	t.lines = append(t.lines, t.formatter.FormatMessage(msg))
	t.viewport.SetContent(strings.Join(t.lines, "\n"))
	t.viewport.GotoBottom()
}

// Refresh re-renders the whole transcript, used after a display mode
// toggle changes how existing messages should look.
func (t *Transcript) Refresh(messages []DataMsg) {
	t.lines = t.formatter.FormatMessages(messages)
	t.viewport.SetContent(strings.Join(t.lines, "\n"))
	t.viewport.GotoBottom()
}

func (t *Transcript) Clear() {
	t.lines = make([]string, 0)
	t.viewport.SetContent("")
}

func (t *Transcript) ToggleHex() {
	t.formatter.ToggleHex()
}

func (t *Transcript) ToggleASCII() {
	t.formatter.ToggleASCII()
}

func (t *Transcript) GetDisplayMode() DisplayMode {
	return t.formatter.GetDisplayMode()
}

func (t *Transcript) Update(msg tea.Msg) (viewport.Model, tea.Cmd) {
	// Only window resizes reach the viewport; key bindings are handled
	// by the owning model.
	switch msg.(type) {
	case tea.WindowSizeMsg:
		return t.viewport.Update(msg)
	default:
		return t.viewport, nil
	}
}

func (t *Transcript) View() string {
	return t.viewport.View()
}
