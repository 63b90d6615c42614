package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/budgetbook/internal/auth"
	"github.com/mmynk/budgetbook/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var (
		username   string
		printToken bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check a username and password",
		Long: `Prompts for the password of --user and checks it against the dataset.
With --token, prints a session token for the API server; this needs
BUDGETBOOK_JWT_SECRET to match the server's.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			password, err := promptPassword(out, "Password: ")
			if err != nil {
				return err
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			name := strings.TrimSpace(username)
			ok, err := store.ValidateLogin(cmd.Context(), name, password)
			if err != nil {
				return err
			}
			if !ok {
				return auth.ErrInvalidCredentials
			}

			fmt.Fprintf(out, "Logged in as %s\n", name)
			if !printToken {
				return nil
			}
			if err := a.cfg.ValidateServer(); err != nil {
				return err
			}
			user, err := store.GetUserByUsername(cmd.Context(), name)
			if err != nil {
				return err
			}
			token, err := auth.NewJWTManager(a.cfg.JWTSecret, a.cfg.TokenTTL).Generate(user)
			if err != nil {
				return fmt.Errorf("failed to issue token: %w", err)
			}
			fmt.Fprintln(out, token)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "user", sqlite.DefaultUsername, "username")
	cmd.Flags().BoolVar(&printToken, "token", false, "print an API session token")
	return cmd
}

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			password, err := promptPassword(out, "New password: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassword(out, "Repeat password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return errors.New("passwords do not match")
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			user, err := auth.NewPasswordAuthenticator(store).Register(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Created user %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	})
	return cmd
}
