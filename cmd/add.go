package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jparise/dt/internal/calc"
	"github.com/jparise/dt/internal/span"
	"github.com/jparise/dt/internal/timeparse"
)

func newAddCmd(a *app) *cobra.Command {
	var exact bool

	cmd := &cobra.Command{
		Use:   "add <span> [<datetime>]",
		Short: "Add a calendar span to a date and time",
		Long: `Add a calendar span to a date and time. Years and months follow the
calendar and clamp to the end of the month, so 2024-01-31 plus 1m is
2024-02-29. Days keep the wall clock time across daylight saving changes.

With --exact, <span> is an elapsed duration such as 90m, -2h, or 1500ms.
With no <datetime>, the current time is used. Prefix negative spans with
"--" so they are not read as flags: dt add -- -1d 2024-03-01.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.resolveArg(args, 1)
			if err != nil {
				return err
			}

			if exact {
				d, err := timeparse.ParseDuration(args[0])
				if err != nil {
					return err
				}
				v, err = calc.AddDuration(v, d)
				if err != nil {
					return err
				}
				a.out.Value(v.String())
				return nil
			}

			s, err := span.Parse(args[0])
			if err != nil {
				return err
			}
			v, err = calc.Add(v, s)
			if err != nil {
				return err
			}
			a.out.Value(v.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&exact, "exact", false, "treat <span> as an elapsed duration")
	return cmd
}
