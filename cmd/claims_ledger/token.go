package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/claims_ledger/internal/utils"
	"github.com/spf13/cobra"
)

func tokenCommand(a *app) *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token <actorID>",
		Short: "sign a bearer token for an actor with the configured JWT secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.IsProduction {
				return errors.New("refusing to mint tokens in production")
			}
			token, err := utils.GenerateJWT(args[0], a.cfg.JWTSecret, ttl, a.cfg.JWTIssuer)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
