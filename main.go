package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"goyal-store/internal/config"
	"goyal-store/internal/logger"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Loaded once per invocation by the root pre-run hook
	appConfig *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "goyal-store",
	Short: "Goyal Cloth Store storefront service",
	Long: `goyal-store serves the boutique catalog, cart, orders and wishlist over HTTP,
with an optional AI stylist backed by Gemini.

Run "goyal-store serve" to start the API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		logger.Init(cfg.LogLevel)
		if verbose {
			logger.SetLevel("debug")
		}
		appConfig = cfg
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func defaultConfigPath() string {
	if v := os.Getenv("GOYAL_CONFIG"); v != "" {
		return v
	}
	return "goyal.yaml"
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "Config file (or set GOYAL_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(adviseCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
