package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/comportlabs/comport"
	"github.com/comportlabs/comport/internal/tui/colors"
	"github.com/evertras/bubble-table/table"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available serial ports",
	Long: `List all available serial ports on the system.

This command scans for communication-capable serial devices including:
- USB serial adapters (ttyUSB*)
- USB CDC/ACM devices (ttyACM*)
- Standard serial ports (ttyS*)
- ARM/Raspberry Pi ports (ttyAMA*)
- Bluetooth RFCOMM devices (rfcomm*)
- And other platform-specific serial devices

Virtual terminals and pseudo-terminals are excluded from the listing.`,
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := comport.ListPorts()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing ports: %v\n", err)
			os.Exit(1)
		}

		transportFilter, _ := cmd.Flags().GetString("transport")
		tableFormat, _ := cmd.Flags().GetBool("table")

		infos := collectPortInfo(ports, transportFilter)
		if len(infos) == 0 {
			if transportFilter != "" {
				fmt.Printf("No serial ports found on transport: %s\n", transportFilter)
			} else {
				fmt.Println("No serial ports found")
			}
			return
		}

		if tableFormat {
			renderTable(infos)
		} else {
			for _, info := range infos {
				fmt.Println(info.Path)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("transport", "T", "", "Filter by transport: usb, bluetooth, pci, all")
	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
}

// collectPortInfo resolves directory metadata for every port and applies
// the transport filter.
func collectPortInfo(ports []string, transportFilter string) []*comport.PortInfo {
	filter := strings.ToLower(transportFilter)

	var infos []*comport.PortInfo
	for _, port := range ports {
		info, err := comport.GetPortInfo(port)
		if err != nil {
			continue
		}

		if filter != "" && filter != "all" &&
			strings.ToLower(info.Transport.String()) != filter {
			continue
		}
		infos = append(infos, info)
	}
	return infos
}

// renderTable prints the port directory as a static styled table.
func renderTable(infos []*comport.PortInfo) {
	fmt.Printf("Found %d serial port(s):\n\n", len(infos))

	columns := []table.Column{
		table.NewColumn("port", "Port", 14),
		table.NewColumn("transport", "Transport", 11),
		table.NewColumn("description", "Description", 24),
		table.NewColumn("ids", "VID:PID", 10),
		table.NewColumn("serial", "Serial", 14),
	}

	rows := make([]table.Row, 0, len(infos))
	for _, info := range infos {
		ids := ""
		if info.VendorID != "" || info.ProductID != "" {
			ids = fmt.Sprintf("%s:%s", info.VendorID, info.ProductID)
		}
		rows = append(rows, table.NewRow(table.RowData{
			"port":        info.Name,
			"transport":   info.Transport.String(),
			"description": info.Description,
			"ids":         ids,
			"serial":      info.SerialNumber,
		}))
	}

	t := table.New(columns).
		WithRows(rows).
		BorderRounded().
		WithBaseStyle(lipgloss.NewStyle().
			Foreground(colors.Text).
			BorderForeground(colors.Muted))

	fmt.Println(t.View())
}
