package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/comportlabs/comport"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "comport",
	Short: "Inspect and talk to serial ports",
	Long: `comport is a command line tool for working with serial ports.

It can list and identify serial devices, display USB metadata, send and
receive data, monitor lines interactively and reset hung USB adapters.

Line settings (baud rate, parity, stop bits, flow control) can be given
per command or stored in a config file so they apply everywhere.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.comport.yaml)")
}

// initConfig reads in the config file and environment variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".comport")
	}

	viper.SetEnvPrefix("comport")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// addLineFlags registers the shared line-setting flags on a command.
func addLineFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("baud", "b", 115200, "Baud rate")
	cmd.Flags().Int("data-bits", 8, "Data bits: 5-8")
	cmd.Flags().StringP("parity", "p", "none", "Parity: none, odd, even, mark, space")
	cmd.Flags().String("stop-bits", "1", "Stop bits: 1 or 2")
	cmd.Flags().StringP("flow-control", "f", "none", "Flow control: none, software, hardware")
	cmd.Flags().DurationP("timeout", "t", time.Second, "Read/write timeout (0 = non-blocking)")
}

// flagOrConfig returns the flag value, letting the config file override
// the default when the flag was not given on the command line.
func flagOrConfig(cmd *cobra.Command, name string) string {
	value, _ := cmd.Flags().GetString(name)
	if !cmd.Flags().Changed(name) && viper.IsSet(name) {
		value = viper.GetString(name)
	}
	return value
}

// lineConfig assembles the serial configuration for a command from its
// flags and the config file.
func lineConfig(cmd *cobra.Command) (comport.Config, error) {
	cfg := comport.DefaultConfig()

	baud, _ := cmd.Flags().GetInt("baud")
	if !cmd.Flags().Changed("baud") && viper.IsSet("baud") {
		baud = viper.GetInt("baud")
	}
	cfg.BaudRate = baud

	dataBits, _ := cmd.Flags().GetInt("data-bits")
	if !cmd.Flags().Changed("data-bits") && viper.IsSet("data-bits") {
		dataBits = viper.GetInt("data-bits")
	}
	if err := cfg.DataBits.UnmarshalText([]byte(strconv.Itoa(dataBits))); err != nil {
		return cfg, err
	}

	if err := cfg.Parity.UnmarshalText([]byte(flagOrConfig(cmd, "parity"))); err != nil {
		return cfg, err
	}
	if err := cfg.StopBits.UnmarshalText([]byte(flagOrConfig(cmd, "stop-bits"))); err != nil {
		return cfg, err
	}
	if err := cfg.FlowControl.UnmarshalText([]byte(flagOrConfig(cmd, "flow-control"))); err != nil {
		return cfg, err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if !cmd.Flags().Changed("timeout") && viper.IsSet("timeout") {
		timeout = viper.GetDuration("timeout")
	}
	cfg.Timeout = timeout

	return cfg, nil
}
