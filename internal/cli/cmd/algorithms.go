package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/internal/cli/client"
	"github.com/emergent-company/atlas/internal/cli/output"
	"github.com/emergent-company/atlas/pkg/paging"
)

var algorithmsCmd = &cobra.Command{
	Use:     "algorithms",
	Aliases: []string{"algorithm", "alg"},
	Short:   "List, inspect and delete algorithms",
}

// addListFlags registers the paging flags shared by list commands.
func addListFlags(cmd *cobra.Command, opts *client.ListOptions) {
	cmd.Flags().IntVar(&opts.Page, "page", 0, "page number, starting at 0")
	cmd.Flags().IntVar(&opts.Size, "size", 0, "page size (default from config)")
	cmd.Flags().StringVar(&opts.Search, "search", "", "filter by name")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", `sort as "field" or "field,desc"`)
}

func pageFooter(m paging.Meta) string {
	pages := m.TotalPages
	if pages == 0 {
		pages = 1
	}
	return fmt.Sprintf("Page %d of %d (%d total)", m.Number+1, pages, m.TotalElements)
}

func newAlgorithmsListCmd() *cobra.Command {
	var opts client.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List algorithms",
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

			page, err := c.Algorithms(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list algorithms: %w", err)
			}

			t := output.Table{
				Headers: []string{"ID", "Name", "Acronym", "Model", "Quantum model"},
				Footer:  pageFooter(page.Page),
			}
			for _, a := range page.Content {
				t.Rows = append(t.Rows, []string{
					a.ID,
					output.Truncate(a.Name, 40),
					a.Acronym,
					string(a.ComputationModel),
					string(a.QuantumComputationModel),
				})
			}
			return p.Print(page, t)
		},
	}

	addListFlags(cmd, &opts)
	return cmd
}

func newAlgorithmsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one algorithm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, p, err := setup(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			a, err := c.Algorithm(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get algorithm: %w", err)
			}
			return p.Print(a, algorithmTable(a))
		},
	}
}

func algorithmTable(a *catalog.Algorithm) output.Table {
	rows := [][]string{
		{"ID", a.ID},
		{"Name", a.Name},
		{"Acronym", a.Acronym},
		{"Computation model", string(a.ComputationModel)},
	}
	if a.QuantumComputationModel != "" {
		rows = append(rows, []string{"Quantum model", string(a.QuantumComputationModel)})
	}
	if a.NisqReady != nil {
		rows = append(rows, []string{"NISQ ready", fmt.Sprintf("%t", *a.NisqReady)})
	}
	if a.SpeedUp != "" {
		rows = append(rows, []string{"Speed-up", a.SpeedUp})
	}
	if a.Intent != "" {
		rows = append(rows, []string{"Intent", output.Truncate(strings.TrimSpace(a.Intent), 80)})
	}
	rows = append(rows,
		[]string{"Created", a.CreatedAt.Format("2006-01-02 15:04:05")},
		[]string{"Updated", a.UpdatedAt.Format("2006-01-02 15:04:05")},
	)
	return output.Table{Headers: []string{"Field", "Value"}, Rows: rows}
}

func newAlgorithmsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an algorithm with its implementations, properties and relations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("deleting algorithm %s also deletes its implementations; rerun with --yes to confirm", args[0])
			}
			_, c, _, err := setup(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			if err := c.DeleteAlgorithm(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete algorithm: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted algorithm %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the deletion")
	return cmd
}

func init() {
	rootCmd.AddCommand(algorithmsCmd)
	algorithmsCmd.AddCommand(newAlgorithmsListCmd())
	algorithmsCmd.AddCommand(newAlgorithmsGetCmd())
	algorithmsCmd.AddCommand(newAlgorithmsDeleteCmd())
}
