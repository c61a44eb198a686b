package main

import (
	"github.com/spf13/cobra"
)

// configPath is the --config flag shared by all commands.
var configPath string

func newRootCommand() *cobra.Command {
	serve := newServeCommand()

	rootCmd := &cobra.Command{
		Use:   "gateway",
		Short: "HTTP gateway for a networked irrigation controller",
		Long: `gateway exposes an irrigation controller over HTTP. Requests to the
controller are serialized and retried once on failure. Without a subcommand it
runs "serve".`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (default configs/config.yml)")

	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(newCheckCommand())

	return rootCmd
}
