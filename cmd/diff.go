package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jparise/dt/internal/calc"
	"github.com/jparise/dt/internal/output"
)

func newDiffCmd(a *app) *cobra.Command {
	var (
		smallest string
		largest  string
		as       string
		list     bool
		format   formatFlags
	)

	cmd := &cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Compute the calendar difference between two dates and times",
		Long: `Compute the span from <from> to <to>, as an ISO 8601 duration and in
abbreviated form. Values in different time zones are compared in UTC.

--largest and --smallest bound the reported units; the remainder is rounded
half away from zero at the smallest unit. --as reports a single unit and
cannot be combined with either bound. --list prints the accepted unit names.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return a.listUnits(format.format(), "")
			}

			bounds, err := calc.ParseBounds(as, smallest, largest)
			if err != nil {
				return err
			}
			from, err := a.resolver.Resolve(args[0])
			if err != nil {
				return err
			}
			to, err := a.resolver.Resolve(args[1])
			if err != nil {
				return err
			}

			d, err := calc.Diff(from, to, bounds)
			if err != nil {
				return err
			}
			return a.out.Record(format.format(), []output.Field{
				{Name: "span", Value: d.Machine()},
				{Name: "human", Value: d.Human()},
			})
		},
	}
	cmd.Flags().StringVar(&smallest, "smallest", "", "smallest unit to report (default nanosecond)")
	cmd.Flags().StringVar(&largest, "largest", "", "largest unit to report (default year)")
	cmd.Flags().StringVar(&as, "as", "", "report the difference in this single unit")
	cmd.Flags().BoolVar(&list, "list", false, "list the accepted unit names")
	format.register(cmd)
	return cmd
}
