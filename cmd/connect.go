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

// connectCmd represents the connect command
var connectCmd = &cobra.Command{
	Use:   "connect <port>",
	Short: "Open an interactive session on a serial port",
	Long: `Open an interactive two-way session on a serial port.

Incoming data streams into a transcript view while a vim-style input
line at the bottom sends messages. Press 'i' to enter insert mode and
type, Enter to send, Esc to return to normal mode. Tab toggles between
ASCII and hex send modes; the arrow keys recall previous messages.

Example usage:
  comport connect /dev/ttyUSB0
  comport connect /dev/ttyUSB0 --baud 9600 --parity even
  comport connect /dev/ttyUSB0 --flow-control hardware`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		portPath := args[0]

		config, err := lineConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		appendNewline, _ := cmd.Flags().GetBool("newline")

		if err := runConnectTUI(portPath, config, appendNewline); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)

	addLineFlags(connectCmd)
	connectCmd.Flags().BoolP("newline", "n", false, "Append newline to ASCII messages")
}

// connectModel is the Bubble Tea model for the interactive session.
type connectModel struct {
	*models.Session
	transcript    *components.Transcript
	statusBar     *components.StatusBar
	input         *components.Input
	help          help.Model
	keys          keys.SessionKeys
	appendNewline bool
}

func runConnectTUI(portPath string, config comport.Config, appendNewline bool) error {
	session := models.NewSession(portPath)

	m := connectModel{
		Session:       session,
		transcript:    components.NewTranscript(80, 20),
		statusBar:     components.NewStatusBar("Connect", portPath),
		input:         components.NewInput("Type message and press Enter to send..."),
		help:          help.New(),
		keys:          keys.NewSessionKeys(),
		appendNewline: appendNewline,
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

func (m *connectModel) Init() tea.Cmd {
	return nil
}

// sendCurrentInput puts the input line on the wire and logs it in the
// transcript, including failures.
func (m *connectModel) sendCurrentInput() {
	payload, err := m.input.Payload(m.appendNewline)
	if err == nil && len(payload) > 0 {
		err = m.Write(payload)
	}
	if len(payload) == 0 && err == nil {
		return
	}

	msg := components.DataMsg{
		Timestamp: time.Now(),
		Data:      payload,
		IsTX:      true,
		Err:       err,
	}
	m.AddMessage(msg)
	m.transcript.AddMessage(msg)

	m.input.AddToHistory(m.input.Value())
	m.input.SetValue("")
}

func (m *connectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// One line of status bar, three lines of bordered input.
		m.transcript.SetSize(msg.Width, msg.Height-4)
		m.statusBar.SetWidth(msg.Width)
		m.input.SetWidth(msg.Width)
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
		if m.IsInInsertMode() {
			switch {
			case key.Matches(msg, m.keys.Escape):
				m.SetInputMode(models.InputModeNormal)
				m.input.Blur()

			case key.Matches(msg, m.keys.Enter):
				m.sendCurrentInput()

			case key.Matches(msg, m.keys.ToggleSendMode):
				m.input.ToggleSendMode()

			case key.Matches(msg, m.keys.HistoryUp):
				m.input.NavigateHistoryUp()

			case key.Matches(msg, m.keys.HistoryDown):
				m.input.NavigateHistoryDown()

			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		} else {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.Cleanup()
				return m, tea.Quit

			case key.Matches(msg, m.keys.InsertMode):
				m.SetInputMode(models.InputModeInsert)
				m.input.Focus()

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
	}

	return m, tea.Batch(cmds...)
}

func (m *connectModel) View() string {
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

	inputView := m.input.ViewWithMode(m.IsInInsertMode())

	timestamp := time.Now().Format("15:04:05")
	statusBar := m.statusBar.View(
		m.GetInputMode().String(),
		m.input.GetSendMode().String(),
		m.IsConnected(),
		timestamp,
	)

	if m.help.ShowAll {
		helpStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Margin(1, 0)
		return lipgloss.JoinVertical(
			lipgloss.Left,
			contentWithBorder,
			helpStyle.Render(m.help.View(m.keys)),
			inputView,
			statusBar,
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		contentWithBorder,
		inputView,
		statusBar,
	)
}
