// Package cmd implements the servify command line interface.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "servify",
	Short: "Command line client for the Servify services marketplace",
	Long: `servify talks to the Servify API the same way the web client does:
requests carry the stored access token, expired tokens are refreshed
transparently, and credentials persist between runs.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command under ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.servify/config.yaml)")
}
