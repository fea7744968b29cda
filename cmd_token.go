package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"goyal-store/internal/auth"
)

var (
	tokenSubject string
	tokenRoles   []string
	tokenTTL     time.Duration
)

// tokenCmd mints a bearer token for the admin endpoints
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a signed admin bearer token",
	Long: `Signs a JWT with the configured secret (auth.jwt_secret or JWT_SECRET).

Example:
  curl -H "Authorization: Bearer $(goyal-store token)" localhost:8080/api/admin/dashboard`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		token, err := auth.IssueToken(appConfig.Auth.JWTSecret, tokenSubject, tokenRoles, tokenTTL)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "owner", "Token subject")
	tokenCmd.Flags().StringSliceVar(&tokenRoles, "role", []string{auth.RoleAdmin}, "Roles to grant (repeatable)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 12*time.Hour, "Token lifetime")
}
