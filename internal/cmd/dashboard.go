package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/crmvibe/crmdash/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	Long: `Open the interactive dashboard.

The dashboard is a full-screen terminal UI over the same views as the
subcommands: customers, events, courses, and analytics. It restores the
saved session on startup and shows the login view when no session
exists.

Keys:
  1-5     switch views
  enter   expand / open the selected row
  /       search customers
  esc     collapse / go back
  L       sign out
  q       quit

Examples:
  crmdash dashboard`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		model := tui.NewModel(tui.Options{
			Sessions:       a.sessions,
			Client:         a.client,
			Logger:         a.logger,
			CustomersEmail: a.cfg.Access.CustomersEmail,
		})

		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("dashboard failed: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
