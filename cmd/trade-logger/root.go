package main

import (
	"github.com/spf13/cobra"

	"trade_logger/internal/config"
)

const serviceName = "MT4 Trade Logger"

// version задается при сборке: -ldflags "-X main.version=..."
var version = "2.0.0"

func newRootCmd() *cobra.Command {
	var envFiles []string

	cmd := &cobra.Command{
		Use:   "trade-logger",
		Short: "Receives closed trades and drawdown snapshots from MT4 terminals and stores them in Notion",
		Long: `trade-logger is the ingestion server behind the MT4 Expert Advisor.

It accepts closed trades, history syncs and drawdown snapshots over HTTP,
deduplicates trades by ticket, links them to account and strategy pages
and writes them to a Notion database.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadEnvFile(envFiles...)
		},
	}

	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "dotenv files to load before reading the environment")

	cmd.AddCommand(
		newServeCmd(),
		newTicketsCmd(),
		newTokenCmd(),
	)

	return cmd
}
