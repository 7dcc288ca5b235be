package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/atlas-it/atlas-agent/internal/config"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:           "atlas-agent",
		Short:         "Atlas support agent",
		Long:          `atlas-agent collects device context and files helpdesk tickets on behalf of the signed-in user.`,
		Version:       config.Version + " (" + config.BuildTime + ")",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to atlas.yaml")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newContextCommand(opts),
		newSubmitCommand(opts),
		newTicketsCommand(opts),
		newHealthCommand(opts),
		newServeCommand(opts),
		newVersionCommand(),
	)
	return rootCmd
}
