package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var verboseLogging bool

var rootCmd = &cobra.Command{
	Use:   "crmdash",
	Short: "Terminal dashboard for the CRM backend",
	Long: `crmdash is a terminal client for a small CRM backend tracking customers,
the events they attended, the courses they purchased, and conversion
analytics between the two.

Sign in once with 'crmdash auth login'; the session is saved under
~/.crmdash and reused until it expires or you sign out.`,
	SilenceUsage: true,
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseLogging, "verbose", "v", false, "enable debug logging")
}
