// Package cmd implements the CLI commands for pricewatch.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pricewatch",
	Short: "Watch product prices and alert on drops",
	Long: "pricewatch periodically fetches configured product pages, extracts\n" +
		"the current price, and sends a webhook notification when a price\n" +
		"reaches or falls below its target.",
}

func init() {
	cobra.OnInitialize(initEnv)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().String("log-level", "", "override the configured log level")

	cobra.CheckErr(viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")))

	rootCmd.AddCommand(versionCommand())
}

func initEnv() {
	viper.SetEnvPrefix("PRICEWATCH")
	viper.AutomaticEnv()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
