package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/comportlabs/comport"
	"github.com/comportlabs/comport/internal/tui/colors"
)

// StatusBar renders the single-line session status at the bottom of the
// TUI: input mode, device path, connection indicator and line settings.
type StatusBar struct {
	title    string
	portPath string
	status   string
	err      error
	width    int
	config   *comport.Config
}

func NewStatusBar(title, portPath string) *StatusBar {
	return &StatusBar{
		title:    title,
		portPath: portPath,
		status:   "Initializing...",
	}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

func (sb *StatusBar) SetConfig(config comport.Config) {
	sb.config = &config
}

func (sb *StatusBar) SetConnecting() {
	sb.status = "Connecting..."
	sb.err = nil
}

func (sb *StatusBar) SetConnected() {
	sb.status = "Connected"
	sb.err = nil
}

func (sb *StatusBar) SetDisconnected(err error) {
	if err != nil {
		sb.status = fmt.Sprintf("Connection failed: %v", err)
		sb.err = err
	} else {
		sb.status = "Disconnected"
		sb.err = nil
	}
}

// lineSettings renders the classic short form, e.g. "115200 8N1 none".
func (sb *StatusBar) lineSettings() string {
	if sb.config == nil {
		return "serial"
	}

	parityShort := map[comport.Parity]string{
		comport.ParityNone:  "N",
		comport.ParityOdd:   "O",
		comport.ParityEven:  "E",
		comport.ParityMark:  "M",
		comport.ParitySpace: "S",
	}[sb.config.Parity]

	return fmt.Sprintf("%d baud %d%s%s %s",
		sb.config.BaudRate,
		int(sb.config.DataBits),
		parityShort,
		sb.config.StopBits,
		sb.config.FlowControl)
}

// View renders the full-width status bar.
func (sb *StatusBar) View(inputMode, sendMode string, connected bool, timestamp string) string {
	width := sb.width
	if width <= 0 {
		width = 80
	}

	var modeStyle lipgloss.Style
	if inputMode == "INSERT" {
		modeStyle = lipgloss.NewStyle().
			Foreground(colors.Base).
			Background(colors.Success).
			Bold(true).
			Padding(0, 1)
	} else {
		modeStyle = lipgloss.NewStyle().
			Foreground(colors.Base).
			Background(colors.Secondary).
			Bold(true).
			Padding(0, 1)
	}
	mode := modeStyle.Render(inputMode)

	port := lipgloss.NewStyle().
		Foreground(colors.Highlight).
		Bold(true).
		Padding(0, 1).
		Render(sb.portPath)

	var connStyle lipgloss.Style
	var connIndicator string
	switch {
	case sb.err != nil:
		connStyle = lipgloss.NewStyle().Foreground(colors.Error)
		connIndicator = "✗"
	case connected:
		connStyle = lipgloss.NewStyle().Foreground(colors.Success)
		connIndicator = "●"
	default:
		connStyle = lipgloss.NewStyle().Foreground(colors.Warning)
		connIndicator = "○"
	}
	connection := connStyle.Render(connIndicator)

	var sendModeInfo string
	if inputMode == "INSERT" && sendMode != "" {
		sendModeInfo = lipgloss.NewStyle().
			Foreground(colors.Warning).
			Bold(true).
			Padding(0, 1).
			Render(fmt.Sprintf("[%s] Tab to toggle", sendMode))
	}

	details := lipgloss.NewStyle().
		Foreground(colors.Subtle).
		Padding(0, 1).
		Render("⚡ " + sb.lineSettings())

	clock := lipgloss.NewStyle().
		Foreground(colors.Text).
		Padding(0, 1).
		Render(timestamp)

	divider := lipgloss.NewStyle().
		Foreground(colors.Muted).
		Padding(0, 1).
		Render("│")

	var leftSide string
	if sendModeInfo != "" {
		leftSide = lipgloss.JoinHorizontal(lipgloss.Left, mode, port, connection, sendModeInfo, divider)
	} else {
		leftSide = lipgloss.JoinHorizontal(lipgloss.Left, mode, port, connection, divider)
	}
	rightSide := lipgloss.JoinHorizontal(lipgloss.Left, details, divider, clock)

	spacerWidth := width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	barStyle := lipgloss.NewStyle().
		Foreground(colors.Text).
		Background(colors.Surface).
		Width(width)

	return barStyle.Render(lipgloss.JoinHorizontal(lipgloss.Left, leftSide, spacer, rightSide))
}
