package cmd

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/comportlabs/comport"
	"github.com/comportlabs/comport/internal/tui/colors"
	"github.com/spf13/cobra"
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send [data] <port>",
	Short: "Send data to a serial port",
	Long: `Send data to a serial port with configurable line settings.

Data can be provided as:
- Command line argument: comport send "Hello World" /dev/ttyUSB0
- From stdin (pipe): echo "test data" | comport send /dev/ttyUSB0
- Interactive prompt: comport send /dev/ttyUSB0

Example usage:
  comport send "Hello World" /dev/ttyUSB0
  comport send "AT+GMR" /dev/ttyUSB0 --newline
  comport send "48656C6C6F" /dev/ttyUSB0 --hex
  echo "test" | comport send /dev/ttyUSB0 --baud 9600`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var data string
		var portPath string

		// Either "send data port" or "send port" with stdin/prompt input.
		if len(args) == 1 {
			portPath = args[0]
			stat, err := os.Stdin.Stat()
			if err != nil || (stat.Mode()&os.ModeCharDevice) != 0 {
				data = promptForData()
			} else {
				stdinData, err := io.ReadAll(os.Stdin)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error reading from stdin: %v\n", err)
					os.Exit(1)
				}
				data = strings.TrimRight(string(stdinData), "\r\n")
			}
		} else {
			data = args[0]
			portPath = args[1]
		}

		config, err := lineConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		addNewline, _ := cmd.Flags().GetBool("newline")
		hexMode, _ := cmd.Flags().GetBool("hex")

		var payload []byte
		if hexMode {
			payload, err = decodeHexString(data)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid hex data: %v\n", err)
				os.Exit(1)
			}
		} else {
			if addNewline {
				data += "\n"
			}
			payload = []byte(data)
		}

		if err := sendData(portPath, config, payload); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	addLineFlags(sendCmd)
	sendCmd.Flags().BoolP("newline", "n", false, "Add newline character to the end of data")
	sendCmd.Flags().BoolP("hex", "x", false, "Interpret data as hexadecimal (e.g. '48656c6c6f' for 'Hello')")
}

func promptForData() string {
	promptStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(colors.Accent)

	fmt.Print(promptStyle.Render("Enter data to send: "))

	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return scanner.Text()
	}
	return ""
}

func decodeHexString(hexStr string) ([]byte, error) {
	cleaned := strings.NewReplacer(" ", "", "0x", "", "0X", "").Replace(hexStr)
	return hex.DecodeString(cleaned)
}

func sendData(portPath string, config comport.Config, payload []byte) error {
	infoStyle := lipgloss.NewStyle().Foreground(colors.Accent).Bold(true)
	successStyle := lipgloss.NewStyle().Foreground(colors.Success).Bold(true)
	errorStyle := lipgloss.NewStyle().Foreground(colors.Error).Bold(true)

	fmt.Printf("%s Opening %s...\n", infoStyle.Render("⚡"), portPath)

	config.Device = portPath
	port, err := comport.NewBuilder().WithConfig(config).Build()
	if err != nil {
		return fmt.Errorf("%s %v", errorStyle.Render("✗"), err)
	}
	defer port.Close()

	fmt.Printf("%s Connected\n", successStyle.Render("✓"))
	fmt.Printf("%s Sending %d bytes...\n", infoStyle.Render("⚡"), len(payload))

	// Partial writes are legal, push until the whole payload is queued.
	remaining := payload
	for len(remaining) > 0 {
		n, err := port.Write(remaining)
		if err != nil {
			return fmt.Errorf("%s failed to send data: %v", errorStyle.Render("✗"), err)
		}
		remaining = remaining[n:]
	}

	if err := port.Flush(); err != nil {
		return fmt.Errorf("%s failed to drain output: %v", errorStyle.Render("✗"), err)
	}

	fmt.Printf("%s Sent %d bytes\n", successStyle.Render("✓"), len(payload))

	preview := string(payload)
	if len(preview) > 50 {
		preview = preview[:50] + "..."
	}
	preview = strings.Map(func(r rune) rune {
		if r < 32 || r > 126 {
			return '·'
		}
		return r
	}, preview)
	fmt.Printf("%s Data: %s\n", infoStyle.Render("⚡"), preview)

	return nil
}
