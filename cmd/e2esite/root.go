package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	build := newBuildFlags()

	cmd := &cobra.Command{
		Use:   "e2esite",
		Short: "e2esite - static HTML site for E2E test reports",
		Long: `e2esite turns a batch of E2E test-report markdown files into a static,
right-to-left Hebrew website: one detail page per report plus an index page
summarizing the whole batch.

Running e2esite without a subcommand is the same as "e2esite build".`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return buildCommandE(cmd, build)
		},
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	build.register(cmd)

	// Add subcommands
	cmd.AddCommand(newBuildCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
