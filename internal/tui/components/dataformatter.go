package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/comportlabs/comport/internal/tui/colors"
)

// DataMsg carries one chunk of traffic through the TUI, either received
// from the line (RX) or sent by the user (TX).
type DataMsg struct {
	Timestamp time.Time
	Data      []byte
	IsTX      bool
	Err       error // TX only, set when the write failed
}

type DisplayMode struct {
	ShowHex   bool
	ShowASCII bool
}

// DataFormatter renders traffic lines for the transcript view.
type DataFormatter struct {
	mode           DisplayMode
	showTimestamps bool
}

func NewDataFormatter(showHex, showASCII bool) *DataFormatter {
	return &DataFormatter{
		mode: DisplayMode{
			ShowHex:   showHex,
			ShowASCII: showASCII,
		},
		showTimestamps: true,
	}
}

func (df *DataFormatter) GetDisplayMode() DisplayMode {
	return df.mode
}

func (df *DataFormatter) ToggleHex() {
	df.mode.ShowHex = !df.mode.ShowHex
}

func (df *DataFormatter) ToggleASCII() {
	df.mode.ShowASCII = !df.mode.ShowASCII
}

func (df *DataFormatter) SetShowTimestamps(show bool) {
	df.showTimestamps = show
}

func (df *DataFormatter) FormatMessage(msg DataMsg) string {
	var indicator string
	if msg.IsTX {
		if msg.Err != nil {
			indicator = lipgloss.NewStyle().
				Foreground(colors.Error).
				Bold(true).
				Render("↗ TX ✗")
		} else {
			indicator = lipgloss.NewStyle().
				Foreground(colors.Success).
				Bold(true).
				Render("↗ TX")
		}
	} else {
		indicator = lipgloss.NewStyle().
			Foreground(colors.Accent).
			Bold(true).
			Render("↙ RX")
	}

	var parts []string

	if df.mode.ShowHex {
		parts = append(parts, fmt.Sprintf("HEX: % X", msg.Data))
	}

	if df.mode.ShowASCII {
		parts = append(parts, fmt.Sprintf("ASCII: %s", printable(msg.Data)))
	}

	// With both views off, fall back to a byte count.
	if !df.mode.ShowHex && !df.mode.ShowASCII {
		parts = append(parts, fmt.Sprintf("BYTES: %d", len(msg.Data)))
	}

	if msg.IsTX && msg.Err != nil {
		parts = append(parts, fmt.Sprintf("error: %v", msg.Err))
	}

	line := fmt.Sprintf("%s: %s", indicator, strings.Join(parts, "  "))

	if df.showTimestamps {
		timestamp := lipgloss.NewStyle().
			Foreground(colors.Muted).
			Render(fmt.Sprintf("[%s]", msg.Timestamp.Format("15:04:05.000")))
		line = timestamp + " " + line
	}

	return line
}

func (df *DataFormatter) FormatMessages(messages []DataMsg) []string {
	formatted := make([]string, len(messages))
	for i, msg := range messages {
		formatted[i] = df.FormatMessage(msg)
	}
	return formatted
}

// printable replaces non-printable bytes with dots so the transcript
// never emits terminal control sequences.
func printable(data []byte) string {
	var sb strings.Builder
	for _, b := range data {
		if b >= 32 && b <= 126 {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
