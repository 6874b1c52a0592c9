package components

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/comportlabs/comport/internal/tui/colors"
	"github.com/comportlabs/comport/internal/tui/styles"
)

type SendMode int

const (
	SendModeASCII SendMode = iota
	SendModeHex
)

func (s SendMode) String() string {
	switch s {
	case SendModeHex:
		return "HEX"
	default:
		return "ASCII"
	}
}

// Input is the message entry field with send-mode switching and a small
// history the arrow keys navigate.
type Input struct {
	textInput    textinput.Model
	sendMode     SendMode
	history      []string
	historyIndex int
	currentInput string
	width        int
}

func NewInput(placeholder string) *Input {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Focus()

	return &Input{
		textInput:    ti,
		sendMode:     SendModeASCII,
		history:      make([]string, 0),
		historyIndex: -1,
	}
}

func (i *Input) SetWidth(width int) {
	i.width = width
	usable := width - 6
	if usable < 20 {
		usable = 20
	}
	i.textInput.Width = usable
}

func (i *Input) Focus() {
	i.textInput.Focus()
}

func (i *Input) Blur() {
	i.textInput.Blur()
}

func (i *Input) Value() string {
	return i.textInput.Value()
}

func (i *Input) SetValue(value string) {
	i.textInput.SetValue(value)
}

func (i *Input) ToggleSendMode() {
	switch i.sendMode {
	case SendModeASCII:
		i.sendMode = SendModeHex
		i.textInput.Placeholder = "Enter hex (e.g. 48656C6C6F or 48 65 6C 6C 6F)..."
	case SendModeHex:
		i.sendMode = SendModeASCII
		i.textInput.Placeholder = "Type message and press Enter to send..."
	}
}

func (i *Input) GetSendMode() SendMode {
	return i.sendMode
}

// Payload interprets the current value according to the send mode and
// returns the bytes to put on the wire.
func (i *Input) Payload(appendNewline bool) ([]byte, error) {
	value := i.textInput.Value()

	if i.sendMode == SendModeHex {
		cleaned := strings.NewReplacer(" ", "", "0x", "", "0X", "").Replace(value)
		data, err := hex.DecodeString(cleaned)
		if err != nil {
			return nil, fmt.Errorf("invalid hex input: %w", err)
		}
		return data, nil
	}

	if appendNewline {
		value += "\n"
	}
	return []byte(value), nil
}

func (i *Input) Update(msg tea.Msg) (*Input, tea.Cmd) {
	var cmd tea.Cmd
	i.textInput, cmd = i.textInput.Update(msg)
	return i, cmd
}

// ViewWithMode renders the input line: an editable field in insert mode,
// a hint line in normal mode.
func (i *Input) ViewWithMode(isInsertMode bool) string {
	var promptSymbol string
	var promptStyle lipgloss.Style
	if i.sendMode == SendModeHex {
		promptSymbol = "#"
		promptStyle = lipgloss.NewStyle().Foreground(colors.Warning).Bold(true)
	} else {
		promptSymbol = ">"
		promptStyle = lipgloss.NewStyle().Foreground(colors.Success).Bold(true)
	}
	prompt := promptStyle.Render(promptSymbol)

	var content string
	if isInsertMode {
		content = lipgloss.JoinHorizontal(lipgloss.Left, prompt, " ", i.textInput.View())
	} else {
		hint := lipgloss.NewStyle().
			Foreground(colors.Muted).
			Render("Press 'i' to enter insert mode")
		content = lipgloss.JoinHorizontal(lipgloss.Left, prompt, " ", hint)
	}

	adjustedWidth := i.width - 4
	if adjustedWidth < 10 {
		adjustedWidth = 10
	}

	inputStyle := styles.InputStyle.
		Width(adjustedWidth).
		AlignHorizontal(lipgloss.Left)
	if isInsertMode {
		inputStyle = inputStyle.BorderForeground(colors.Success)
	}

	return inputStyle.Render(content)
}

// AddToHistory records a sent message, skipping blanks and immediate
// duplicates. Only the last 100 entries are kept.
func (i *Input) AddToHistory(message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	if len(i.history) > 0 && i.history[len(i.history)-1] == message {
		return
	}

	i.history = append(i.history, message)
	if len(i.history) > 100 {
		i.history = i.history[1:]
	}

	i.historyIndex = -1
	i.currentInput = ""
}

func (i *Input) NavigateHistoryUp() {
	if len(i.history) == 0 {
		return
	}

	if i.historyIndex == -1 {
		i.currentInput = i.textInput.Value()
		i.historyIndex = len(i.history) - 1
	} else if i.historyIndex > 0 {
		i.historyIndex--
	}

	i.textInput.SetValue(i.history[i.historyIndex])
}

func (i *Input) NavigateHistoryDown() {
	if len(i.history) == 0 || i.historyIndex == -1 {
		return
	}

	if i.historyIndex < len(i.history)-1 {
		i.historyIndex++
		i.textInput.SetValue(i.history[i.historyIndex])
	} else {
		i.historyIndex = -1
		i.textInput.SetValue(i.currentInput)
		i.currentInput = ""
	}
}
