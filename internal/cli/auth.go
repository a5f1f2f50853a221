package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pmboard/internal/client"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and save the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		return startSession(cmd, func(a *app) (client.Session, error) {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			return a.client.Login(ctx, email, password)
		})
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		name, _ := cmd.Flags().GetString("name")
		return startSession(cmd, func(a *app) (client.Session, error) {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			return a.client.Register(ctx, email, password, name)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := clearSession(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().String("email", "", "Account email")
		c.Flags().String("password", "", "Account password")
		_ = c.MarkFlagRequired("email")
		_ = c.MarkFlagRequired("password")
	}
	registerCmd.Flags().String("name", "", "Display name")
}

func startSession(cmd *cobra.Command, open func(*app) (client.Session, error)) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	s, err := open(a)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			return errors.New(apiErr.Message)
		}
		return err
	}
	saved := &Session{
		Server: a.server,
		Token:  s.Token,
		User:   SessionUser{ID: s.User.ID, Name: s.User.Name, Email: s.User.Email},
	}
	if err := saveSession(saved); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", Bold(s.User.Name), s.User.Email)
	return nil
}
