package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loan-sip-planner/config"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Compare financing a car loan against investing the same budget in a SIP",
	Long: `planner projects an amortizing loan and a monthly SIP side by side over a
common horizon and reports the net wealth difference between the two.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(amortizeCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(strategiesCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("planner %s (%s)\n", version, commit)
	},
}
