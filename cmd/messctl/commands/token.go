package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/messbook/internal/auth"
	"github.com/mmynk/messbook/internal/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a development bearer token",
	Long: `Sign a JWT for the given user ID with MESSCTL_JWT_SECRET. The server must run
with the same secret in JWT_SECRET to accept it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		if len(settings.JWTSecret) < config.MinSecretLength {
			return fmt.Errorf("MESSCTL_JWT_SECRET must be at least %d bytes", config.MinSecretLength)
		}

		token, err := auth.NewJWTManager(settings.JWTSecret, settings.TokenDuration).Generate(userID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringP("user", "u", "", "User ID to put in the token")
	_ = tokenCmd.MarkFlagRequired("user")
}
