package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"trade_logger/internal/auth"
)

func newTokenCmd() *cobra.Command {
	var (
		secret string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token <terminal>",
		Short: "Issue a bearer token for an MT4 terminal",
		Long: `Issues a static HS256 token signed with API_JWT_SECRET.
The terminal sends it as "Authorization: Bearer <token>".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("API_JWT_SECRET")
			}
			if secret == "" {
				return errors.New("missing secret: set --secret or env API_JWT_SECRET")
			}

			svc, err := auth.NewService(secret, ttl)
			if err != nil {
				return err
			}

			token, err := svc.GenerateToken(args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)

			return err
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "signing secret (default: env API_JWT_SECRET)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime, 0 means no expiry")

	return cmd
}
