// Package cmd holds the atlasctl cobra commands.
package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/emergent-company/atlas/internal/cli/client"
	"github.com/emergent-company/atlas/internal/cli/config"
	"github.com/emergent-company/atlas/internal/cli/output"
)

var (
	cfgFile   string
	serverURL string
	token     string
	outputFmt string
	debug     bool
)

const requestTimeout = 30 * time.Second

var rootCmd = &cobra.Command{
	Use:   "atlasctl",
	Short: "Command-line client for the Atlas quantum algorithm catalog",
	Long: `atlasctl talks to an Atlas server over its REST API.

It lists and inspects algorithms and software platforms, imports catalog
files written in YAML and checks that the server speaks a compatible API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// NewRootCommand returns the root command, for tests.
func NewRootCommand() *cobra.Command {
	return rootCmd
}

// Execute runs the root command. Called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.atlas/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Atlas server URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "bearer token for write operations")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log HTTP requests and responses")
}

// loadConfig resolves settings: flags over ATLAS_* env over the config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadWithEnv(config.DiscoverPath(cfgFile))
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.ServerURL = serverURL
	}
	if flags.Changed("token") {
		cfg.Token = token
	}
	if flags.Changed("output") {
		cfg.Output = outputFmt
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
	return cfg, nil
}

// setup loads the config and builds the client and printer for a command.
func setup(cmd *cobra.Command) (*config.Config, *client.Client, *output.Printer, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return nil, nil, nil, err
	}
	c := client.New(cfg.ServerURL, cfg.Token, cfg.Debug)
	return cfg, c, output.NewPrinter(cmd.OutOrStdout(), format), nil
}
