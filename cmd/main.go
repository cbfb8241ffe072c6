package main

import (
	"fmt"
	"os"

	"golang-restaurant-explorer/configs"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "restaurant-explorer",
	Short: "Browse restaurants from the public restaurant API",
	Long: `restaurant-explorer lists restaurants from the restaurant API and lets you
narrow them down by open status, price range and city. Run "serve" for the
web page and JSON API, or "browse" for the terminal view.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ./configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(browseCmd)
}

// loadConfig reads configuration and applies global flags
func loadConfig() (*configs.Config, error) {
	config, err := configs.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		config.Log.Level = "debug"
	}
	return config, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
