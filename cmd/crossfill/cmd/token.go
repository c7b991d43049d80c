package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crossplay/crossfill/internal/auth"
	"github.com/crossplay/crossfill/internal/config"
)

var tokenOperator string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an operator bearer token for the status server's /cancel endpoint",
	RunE:  runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringVar(&tokenOperator, "operator", "", "name of the operator this token identifies (required)")
}

func runToken(cmd *cobra.Command, args []string) error {
	if tokenOperator == "" {
		return fmt.Errorf("token: --operator is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireJWTSecret(); err != nil {
		return err
	}

	service := auth.NewService(cfg.JWTSecret)
	tok, err := service.GenerateToken(tokenOperator)
	if err != nil {
		return fmt.Errorf("token: generating token: %w", err)
	}

	fmt.Println(tok)
	return nil
}
