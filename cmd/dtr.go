package cmd

import (
	"fmt"
	"os"

	"github.com/comportlabs/comport"
	"github.com/spf13/cobra"
)

// dtrCmd represents the dtr command
var dtrCmd = &cobra.Command{
	Use:   "dtr <port> <state>",
	Short: "Control DTR (Data Terminal Ready) signal",
	Long: `Manually set the DTR (Data Terminal Ready) signal state.

Toggling DTR resets some devices, notably Arduino boards.

Examples:
  comport dtr /dev/ttyUSB0 high
  comport dtr /dev/ttyUSB0 low

Valid states: high, low, on, off, true, false, 1, 0`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		portPath := args[0]

		state, err := parseSignalState(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		port, err := comport.New(portPath, 9600).Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening port: %v\n", err)
			os.Exit(1)
		}
		defer port.Close()

		if err := port.SetDTR(state); err != nil {
			fmt.Fprintf(os.Stderr, "Error setting DTR: %v\n", err)
			os.Exit(1)
		}

		signals, err := port.Signals()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not verify DTR state: %v\n", err)
			fmt.Printf("DTR set on %s\n", portPath)
			return
		}

		fmt.Printf("DTR set to %s on %s\n", formatSignalState(signals.DTR), portPath)
	},
}

func init() {
	rootCmd.AddCommand(dtrCmd)
}
