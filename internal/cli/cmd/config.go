package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/emergent-company/atlas/internal/cli/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long:  "Show and change the server URL, token and output settings of atlasctl",
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Setting", "Value")
			_ = table.Append("Server URL", cfg.ServerURL)
			_ = table.Append("Token", cfg.MaskedToken())
			_ = table.Append("Output", cfg.Output)
			_ = table.Append("Page size", fmt.Sprint(cfg.PageSize))
			_ = table.Append("Debug", fmt.Sprint(cfg.Debug))
			_ = table.Append("Config file", config.DiscoverPath(cfgFile))
			return table.Render()
		},
	}
}

func newConfigSetServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-server <url>",
		Short: "Set the Atlas server URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DiscoverPath(cfgFile)
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg.ServerURL = args[0]
			if err := config.Save(cfg, path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Server URL updated to: %s\n", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to: %s\n", path)
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigSetServerCmd())
}
