package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwttoken "tally/internal/jwt_token"
	"tally/internal/platform/config"
)

var tokenTTL time.Duration

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to TALLY_JWT_TTL)")
	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token <identity>",
	Short: "Mint a bearer token for an identity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromEnv()
		if err != nil {
			return err
		}
		ttl := cfg.JWT.TokenTTL
		if tokenTTL > 0 {
			ttl = tokenTTL
		}
		svc := jwttoken.NewJWTService(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.Audience)
		token, err := svc.GenerateToken(args[0], ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}
