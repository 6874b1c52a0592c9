package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/comportlabs/comport"
	"github.com/spf13/cobra"
)

// purgeCmd represents the purge command
var purgeCmd = &cobra.Command{
	Use:   "purge <port>",
	Short: "Discard buffered data on a serial port",
	Long: `Discard bytes sitting in the OS queues of a serial port.

Useful to throw away stale data before starting a fresh exchange with a
device, without reopening the port from the consuming application.

Examples:
  comport purge /dev/ttyUSB0                 # both directions
  comport purge /dev/ttyUSB0 --direction in  # received data only
  comport purge /dev/ttyUSB0 --direction out # untransmitted data only`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		portPath := args[0]

		direction, _ := cmd.Flags().GetString("direction")
		var buffer comport.ClearBuffer
		switch strings.ToLower(direction) {
		case "in", "input", "rx":
			buffer = comport.ClearInput
		case "out", "output", "tx":
			buffer = comport.ClearOutput
		case "all", "both":
			buffer = comport.ClearAll
		default:
			fmt.Fprintf(os.Stderr, "Invalid direction: %s (valid: in, out, all)\n", direction)
			os.Exit(1)
		}

		port, err := comport.New(portPath, 9600).Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening port: %v\n", err)
			os.Exit(1)
		}
		defer port.Close()

		queued, err := port.BytesToRead()
		if err == nil && queued > 0 {
			fmt.Printf("Discarding %d queued input byte(s)\n", queued)
		}

		if err := port.Clear(buffer); err != nil {
			fmt.Fprintf(os.Stderr, "Error purging buffers: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Purged %s buffers on %s\n", strings.ToLower(direction), portPath)
	},
}

func init() {
	rootCmd.AddCommand(purgeCmd)

	purgeCmd.Flags().StringP("direction", "d", "all", "Which buffers to purge: in, out, all")
}
