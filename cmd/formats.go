package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jparise/dt/internal/catalog"
	"github.com/jparise/dt/internal/output"
)

func newFormatsCmd(a *app) *cobra.Command {
	var (
		filter string
		format formatFlags
	)

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the strict formats dt parses",
		Long: `List the named strftime templates dt tries when parsing, in the order
they are tried, each with the current time as an example.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := a.resolver.Now(a.resolver.SystemZone())
			if err != nil {
				return err
			}

			var rows [][]string
			for _, e := range catalog.Entries() {
				rows = append(rows, []string{e.Name, e.Format(now.Time()), e.Template, e.Description})
			}
			rows, err = output.FilterRows(rows, filter)
			if err != nil {
				return err
			}
			return a.out.Table(format.format(), []string{"Name", "Example", "Template", "Description"}, rows)
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "glob pattern to filter rows (e.g., \"short_*\")")
	format.register(cmd)
	return cmd
}
