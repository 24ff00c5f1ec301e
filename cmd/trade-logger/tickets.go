package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"trade_logger/internal/api"
	"trade_logger/internal/config"
	"trade_logger/internal/ingest"
)

func newTicketsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tickets <account>",
		Short: "Print every ticket already stored for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// логи в stderr, stdout только под результат
			logger, closeLog, err := newLogger(os.Stderr, config.LoadLogging())
			if err != nil {
				return err
			}
			defer closeLog()

			cfg := config.Load(logger)

			svc := newIngestService(cfg, logger)
			if !svc.TradesConfigured() {
				return ingest.ErrNotConfigured
			}

			tickets := svc.AccountTickets(cmd.Context(), args[0])

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			return enc.Encode(api.TicketsResponse{
				AccountID: args[0],
				Total:     len(tickets),
				Tickets:   tickets,
			})
		},
	}
}
