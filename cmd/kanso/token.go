package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-lifesync/internal/config"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/services"
)

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <client>",
		Short: "Issue a bearer token for the local API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configDir)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if cfg.JWT.Secret == "" {
				return errors.New("JWT_SECRET is not set")
			}

			token, err := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL).GenerateToken(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
