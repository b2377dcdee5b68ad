package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/crmvibe/crmdash/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View crmdash configuration",
	Long: `Manage crmdash configuration stored at ~/.crmdash/config.yaml

Configuration includes:
  • Backend API base URL (overridable with CRMDASH_API_BASE)
  • Customer-view access restriction
  • Logging settings

Examples:
  # View current configuration
  crmdash config view

  # Show configuration file path
  crmdash config path`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Display current configuration",
	Long:  `Display the effective configuration, including defaults for keys the file omits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}

		fmt.Print(string(data))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Print the path of the configuration file, whether or not it exists yet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}

		fmt.Println(path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
