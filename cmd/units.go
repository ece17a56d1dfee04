package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jparise/dt/internal/output"
	"github.com/jparise/dt/internal/units"
)

func newUnitsCmd(a *app) *cobra.Command {
	var (
		filter string
		format formatFlags
	)

	cmd := &cobra.Command{
		Use:   "units",
		Short: "List unit names and abbreviations",
		Long: `List the units accepted by "dt part", "dt diff", and spans, with every
accepted abbreviation. --filter keeps rows where a name, an abbreviation,
or the description matches a glob pattern, ignoring case.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listUnits(format.format(), filter)
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "glob pattern to filter rows (e.g., \"m*\")")
	format.register(cmd)
	return cmd
}

// listUnits writes the unit registry as a table.
func (a *app) listUnits(format output.Format, filter string) error {
	var rows [][]string
	for _, e := range units.Entries() {
		rows = append(rows, []string{e.Name, strings.Join(e.Aliases, ", "), e.Description})
	}
	rows, err := output.FilterRows(rows, filter)
	if err != nil {
		return err
	}
	return a.out.Table(format, []string{"Name", "Aliases", "Description"}, rows)
}
