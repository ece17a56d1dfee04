package cmd

import (
	"github.com/ncruces/go-strftime"
	"github.com/spf13/cobra"
)

func newFormatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "format <strftime> [<datetime>]",
		Short: "Render a date and time with a strftime template",
		Long: `Render a date and time with a strftime template, such as "%Y-%m-%d %H:%M".

With no <datetime>, the current time is used. Run "dt formats" to see the
templates dt recognizes when parsing.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.resolveArg(args, 1)
			if err != nil {
				return err
			}
			a.out.Plain(strftime.Format(args[0], v.Time()))
			return nil
		},
	}
}
