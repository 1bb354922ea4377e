package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emergent-company/atlas/internal/cli/importer"
	"github.com/emergent-company/atlas/internal/cli/output"
)

func newImportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import publications, platforms, algorithms and relations from a YAML file",
		Long: `Import a catalog file.

Entries reference each other by local keys. The file is validated completely
before the first request; the import stops at the first rejected request and
does not undo what was already created.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := importer.Read(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "%s is valid: %d algorithms, %d publications, %d software platforms, %d relations\n",
					args[0], len(file.Algorithms), len(file.Publications), len(file.SoftwarePlatforms), len(file.Relations))
				return nil
			}

			_, c, p, err := setup(cmd)
			if err != nil {
				return err
			}

			res, err := importer.New(c, cmd.ErrOrStderr()).Run(cmd.Context(), file)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			return p.Print(res, output.Table{
				Headers: []string{"Entity", "Created"},
				Rows: [][]string{
					{"Relation types", fmt.Sprint(res.RelationTypes)},
					{"Publications", fmt.Sprint(res.Publications)},
					{"Software platforms", fmt.Sprint(res.SoftwarePlatforms)},
					{"Algorithms", fmt.Sprint(res.Algorithms)},
					{"Implementations", fmt.Sprint(res.Implementations)},
					{"Links", fmt.Sprint(res.Links)},
					{"Relations", fmt.Sprint(res.Relations)},
				},
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the file without contacting the server")
	return cmd
}

func init() {
	rootCmd.AddCommand(newImportCmd())
}
