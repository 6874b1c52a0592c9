package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/comportlabs/comport"
	"github.com/comportlabs/comport/internal/tui/components"
	"github.com/comportlabs/comport/internal/tui/keys"
	"github.com/comportlabs/comport/internal/tui/models"
	"github.com/comportlabs/comport/internal/tui/styles"
	"github.com/spf13/cobra"
)

// listenCmd represents the listen command
var listenCmd = &cobra.Command{
	Use:   "listen <port>",
	Short: "Listen for data on a serial port with real-time display",
	Long: `Listen for incoming data on a serial port with a real-time TUI display.

This command opens the specified serial port and displays incoming data
as it arrives. Features include:
- Real-time data streaming with timestamps
- ASCII and hex display modes
- Connection status indicators
- Configurable line settings

Example usage:
  comport listen /dev/ttyUSB0
  comport listen /dev/ttyUSB0 --baud 9600
  comport listen /dev/ttyUSB0 --flow-control hardware`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		portPath := args[0]

		config, err := lineConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		noTimestamps, _ := cmd.Flags().GetBool("no-timestamps")

		if err := runListenTUI(portPath, config, noTimestamps); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(listenCmd)

	addLineFlags(listenCmd)
	listenCmd.Flags().Bool("no-timestamps", false, "Hide timestamps from output")
}

// listenModel is the Bubble Tea model for the listen command.
type listenModel struct {
	*models.Session
	transcript *components.Transcript
	statusBar  *components.StatusBar
	help       help.Model
	keys       keys.TranscriptKeys
}

func runListenTUI(portPath string, config comport.Config, noTimestamps bool) error {
	session := models.NewSession(portPath)
	transcript := components.NewTranscript(80, 20)
	transcript.SetShowTimestamps(!noTimestamps)

	m := listenModel{
		Session:    session,
		transcript: transcript,
		statusBar:  components.NewStatusBar("Listen", portPath),
		help:       help.New(),
		keys:       keys.NewTranscriptKeys(),
	}
	m.statusBar.SetConnecting()
	m.statusBar.SetConfig(config)

	p := tea.NewProgram(&m, tea.WithAltScreen())

	go func() {
		if err := session.Connect(config, p.Send); err != nil {
			p.Send(models.ConnectionStatusMsg{Connected: false, Error: err})
			return
		}
		p.Send(models.ConnectionStatusMsg{Connected: true})
	}()

	_, err := p.Run()
	session.Cleanup()
	return err
}

func (m *listenModel) Init() tea.Cmd {
	return nil
}

func (m *listenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		statusBarHeight := 1
		m.transcript.SetSize(msg.Width, msg.Height-statusBarHeight)
		m.statusBar.SetWidth(msg.Width)
		m.SetReady(true)

		_, cmd := m.transcript.Update(msg)
		cmds = append(cmds, cmd)

	case models.ConnectionStatusMsg:
		m.SetConnected(msg.Connected)
		if msg.Error != nil {
			m.SetError(msg.Error)
			m.statusBar.SetDisconnected(msg.Error)
		} else {
			m.statusBar.SetConnected()
		}

	case components.DataMsg:
		if !m.IsReady() {
			m.transcript.SetSize(80, 20)
			m.SetReady(true)
		}
		m.AddMessage(msg)
		m.transcript.AddMessage(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.Cleanup()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Clear):
			m.ClearMessages()
			m.transcript.Clear()

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.ToggleHex):
			m.transcript.ToggleHex()
			m.transcript.Refresh(m.Messages())

		case key.Matches(msg, m.keys.ToggleASCII):
			m.transcript.ToggleASCII()
			m.transcript.Refresh(m.Messages())
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *listenModel) View() string {
	var content string
	if m.IsReady() {
		content = m.transcript.View()
	} else {
		content = "Initializing..."
	}
	contentWithBorder := styles.ContentBorderStyle.Render(content)

	width := 80
	if m.IsReady() {
		width = m.transcript.Width()
	}
	m.statusBar.SetWidth(width)

	timestamp := time.Now().Format("15:04:05")
	statusBar := m.statusBar.View("LISTEN", "", m.IsConnected(), timestamp)

	if m.help.ShowAll {
		helpStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Margin(1, 0)
		return lipgloss.JoinVertical(
			lipgloss.Left,
			contentWithBorder,
			helpStyle.Render(m.help.View(m.keys)),
			statusBar,
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		contentWithBorder,
		statusBar,
	)
}
