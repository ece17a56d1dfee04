package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jparise/dt/internal/output"
	"github.com/jparise/dt/internal/part"
)

func newPartCmd(a *app) *cobra.Command {
	var (
		list   bool
		all    bool
		format formatFlags
	)

	cmd := &cobra.Command{
		Use:   "part <unit> [<datetime>]",
		Short: "Extract one calendar field from a date and time",
		Long: `Extract one calendar field, such as the year, quarter, ISO week, or
weekday, as an integer. Weekdays count from 0 (Sunday) to 6 (Saturday).

With no <datetime>, the current time is used. --all prints every field and
--list prints the accepted unit names.`,
		Args: func(cmd *cobra.Command, args []string) error {
			switch {
			case list:
				return cobra.NoArgs(cmd, args)
			case all:
				return cobra.MaximumNArgs(1)(cmd, args)
			}
			return cobra.RangeArgs(1, 2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return a.listUnits(format.format(), "")
			}
			if all {
				v, err := a.resolveArg(args, 0)
				if err != nil {
					return err
				}
				var fields []output.Field
				for _, f := range part.All(v) {
					fields = append(fields, output.Field{Name: f.Name, Value: strconv.Itoa(f.Value)})
				}
				return a.out.Record(format.format(), fields)
			}

			v, err := a.resolveArg(args, 1)
			if err != nil {
				return err
			}
			n, err := part.Extract(v, args[0])
			if err != nil {
				return err
			}
			a.out.Value(strconv.Itoa(int(n)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list the accepted unit names")
	cmd.Flags().BoolVar(&all, "all", false, "print every field")
	cmd.MarkFlagsMutuallyExclusive("list", "all")
	format.register(cmd)
	return cmd
}
