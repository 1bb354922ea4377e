package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emergent-company/atlas/internal/cli/client"
	"github.com/emergent-company/atlas/internal/cli/output"
)

var platformsCmd = &cobra.Command{
	Use:     "platforms",
	Aliases: []string{"platform", "software-platforms"},
	Short:   "Inspect software platforms",
}

func newPlatformsListCmd() *cobra.Command {
	var opts client.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List software platforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, c, p, err := setup(cmd)
			if err != nil {
				return err
			}
			if opts.Size == 0 {
				opts.Size = cfg.PageSize
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			page, err := c.SoftwarePlatforms(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list software platforms: %w", err)
			}

			t := output.Table{
				Headers: []string{"ID", "Name", "Version", "Licence", "Link"},
				Footer:  pageFooter(page.Page),
			}
			for _, sp := range page.Content {
				t.Rows = append(t.Rows, []string{sp.ID, sp.Name, sp.Version, sp.Licence, sp.Link})
			}
			return p.Print(page, t)
		},
	}

	addListFlags(cmd, &opts)
	return cmd
}

func init() {
	rootCmd.AddCommand(platformsCmd)
	platformsCmd.AddCommand(newPlatformsListCmd())
}
