package cmd

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crmvibe/crmdash/internal/api"
	"github.com/crmvibe/crmdash/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the saved CRM session",
	Long: `Manage the saved CRM session.

The auth command provides subcommands for signing in, signing out, and
checking the current session.

Sessions are stored under ~/.crmdash and reused across invocations.

Subcommands:
  login   Exchange a Google ID token for a CRM session
  logout  Sign out and remove the saved session
  status  Show the current session

Examples:
  crmdash auth login --token <google-id-token>
  crmdash auth status
  crmdash auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// authLoginCmd exchanges a Google ID token for a backend session
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with a Google ID token",
	Long: `Sign in with a Google ID token.

The token is exchanged with the CRM backend for an access token, which
is saved locally along with your profile. If --token is omitted you
will be prompted for it.

Examples:
  crmdash auth login --token <google-id-token>
  crmdash auth login`,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, _ := cmd.Flags().GetString("token")

		if token == "" {
			var err error
			token, err = tui.PromptForString(tui.Prompt{
				Message:  "Google ID token",
				Secret:   true,
				Required: true,
			})
			if err != nil {
				return err
			}
		}

		a, err := newApp()
		if err != nil {
			return err
		}

		sess, err := a.sessions.Login(cmd.Context(), token)
		if err != nil {
			return err
		}

		fmt.Printf("Signed in as %s <%s>\n", sess.User.Name, sess.User.Email)

		return nil
	},
}

// authLogoutCmd removes the saved session
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the saved session",
	Long: `Sign out and remove the saved session.

This removes the credentials stored under ~/.crmdash. You will need to
sign in again to use the dashboard. Asks for confirmation unless --yes
is given.

Examples:
  crmdash auth logout
  crmdash auth logout --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		assumeYes, _ := cmd.Flags().GetBool("yes")

		a, err := newApp()
		if err != nil {
			return err
		}

		sess, ok := a.sessions.Current()
		if !ok {
			fmt.Println("Not signed in")
			return nil
		}

		confirmed, err := confirmLogout(sess.User.Email, assumeYes)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted")
			return nil
		}

		if err := a.sessions.Logout(); err != nil {
			return err
		}

		fmt.Println("Signed out")

		return nil
	},
}

// confirmLogout asks before discarding the session. assumeYes skips the
// prompt for non-interactive use.
func confirmLogout(email string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	return tui.PromptForConfirmation(fmt.Sprintf("Sign out %s?", email), true)
}

// authStatusCmd shows the current session, verified against the backend
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Long: `Show the current session.

Reports who is signed in according to the saved session and verifies
the credential against the backend. A rejected credential clears the
saved session.

Examples:
  crmdash auth status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		sess, ok := a.sessions.Current()
		if !ok {
			fmt.Println("Not signed in")
			return nil
		}

		fmt.Printf("Signed in as %s <%s>\n", sess.User.Name, sess.User.Email)

		user, err := a.client.Me(cmd.Context())
		if err != nil {
			var unauth *api.UnauthorizedError
			if stderrors.As(err, &unauth) {
				fmt.Println("Session expired; run 'crmdash auth login' to sign in again")
				return nil
			}
			return err
		}

		fmt.Printf("Session valid (user id %d)\n", user.ID)

		return nil
	},
}

func init() {
	authLoginCmd.Flags().String("token", "", "Google ID token to exchange")
	authLogoutCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
