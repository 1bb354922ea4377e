package cmd

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/emergent-company/atlas/internal/cli/client"
	"github.com/emergent-company/atlas/internal/version"
)

func newVersionCmd() *cobra.Command {
	var clientOnly bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information and check server compatibility",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "atlasctl\n")
			fmt.Fprintf(out, "  Version:    %s\n", version.Version)
			fmt.Fprintf(out, "  Commit:     %s\n", version.GitCommit)
			fmt.Fprintf(out, "  Built:      %s\n", version.BuildTime)
			fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
			if clientOnly {
				return nil
			}

			cfg, c, _, err := setup(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			info, err := c.Info(ctx)
			if err != nil {
				return fmt.Errorf("failed to reach %s: %w", cfg.ServerURL, err)
			}
			fmt.Fprintf(out, "server %s\n", cfg.ServerURL)
			fmt.Fprintf(out, "  Version:    %s\n", info.Build.Version)
			fmt.Fprintf(out, "  API:        %s\n", info.APIVersion)
			fmt.Fprintf(out, "  Storage:    %t\n", info.StorageEnabled)
			fmt.Fprintf(out, "  Auth:       %t\n", info.AuthEnabled)

			if err := client.CheckCompatible(version.Version, info); err != nil {
				return err
			}
			fmt.Fprintln(out, "compatible")
			return nil
		},
	}

	cmd.Flags().BoolVar(&clientOnly, "client", false, "print the client version only")
	return cmd
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}
