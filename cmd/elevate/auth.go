// ABOUTME: CLI commands for local accounts: signup, login, logout, status.
// ABOUTME: Failures are shown as destructive notifications, as the sign-in page does.
package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/elevate/internal/auth"
	"github.com/harperreed/elevate/internal/notify"
)

var authPassword string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign up, sign in and out",
	Long: `Manage the local account that owns your workouts.

Accounts live in the configured storage backend with bcrypt-hashed
passwords. The current session is kept in the preference store, so you
stay signed in between runs.

COMMANDS:

  signup   Create an account and sign in
  login    Sign in
  logout   Sign out
  status   Show who is signed in

Passwords must be at least 6 characters. Without --password you are
prompted on stdin.`,
}

var authSignupCmd = public(&cobra.Command{
	Use:   "signup <email>",
	Short: "Create an account and sign in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(cmd)
		if err != nil {
			return err
		}

		n := notifier(cmd)
		s, err := provider.SignUp(cmd.Context(), args[0], password)
		if err != nil {
			n.Notify("Sign up failed", err.Error(), notify.Destructive)
			return err
		}
		n.Notify("Sign up successful", fmt.Sprintf("Welcome to Elevate, %s!", s.Email), notify.Success)
		return nil
	},
})

var authLoginCmd = public(&cobra.Command{
	Use:     "login <email>",
	Aliases: []string{"signin"},
	Short:   "Sign in",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(cmd)
		if err != nil {
			return err
		}

		n := notifier(cmd)
		if _, err := provider.SignIn(cmd.Context(), args[0], password); err != nil {
			n.Notify("Login failed", err.Error(), notify.Destructive)
			return err
		}
		n.Notify("Login successful", "Welcome back to Elevate!", notify.Success)
		return nil
	},
})

var authLogoutCmd = public(&cobra.Command{
	Use:     "logout",
	Aliases: []string{"signout"},
	Short:   "Sign out",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n := notifier(cmd)
		if err := provider.SignOut(cmd.Context()); err != nil {
			n.Notify("Error signing out", err.Error(), notify.Destructive)
			return err
		}
		n.Notify("Signed out successfully", "", notify.Info)
		return nil
	},
})

var authStatusCmd = public(&cobra.Command{
	Use:   "status",
	Short: "Show who is signed in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		s := watcher.Session()
		if s == nil {
			fmt.Fprintln(out, "Not signed in.")
			return nil
		}
		fmt.Fprintf(out, "Signed in as %s\n", color.New(color.Bold).Sprint(s.Email))
		fmt.Fprintf(out, "  %s\n", color.New(color.Faint).Sprintf("since %s", s.CreatedAt.Local().Format("2006-01-02 15:04")))
		return nil
	},
})

// readPassword returns --password or the first line of stdin.
func readPassword(cmd *cobra.Command) (string, error) {
	if authPassword != "" {
		return authPassword, nil
	}
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", auth.ErrWeakPassword
	}
	return password, nil
}

func init() {
	for _, c := range []*cobra.Command{authSignupCmd, authLoginCmd} {
		c.Flags().StringVarP(&authPassword, "password", "p", "", "password (prompted when omitted)")
	}

	authCmd.AddCommand(authSignupCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
