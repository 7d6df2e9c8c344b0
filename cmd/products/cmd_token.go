package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/product_service/internal/config"
	"github.com/Skotchmaster/product_service/internal/middleware/auth"
)

var (
	tokenSubject string
	tokenRole    string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print an access token signed with JWT_SECRET",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		if len(cfg.JWTSecret) == 0 {
			return errors.New("JWT_SECRET is not set")
		}

		token, err := auth.SignAccessToken(tokenSubject, tokenRole, auth.AccessTokenTTL, cfg.JWTSecret)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "sub", "cli", "token subject")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "admin", "token role")
}
