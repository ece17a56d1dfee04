package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jparise/dt/internal/zoned"
)

func newNowCmd(a *app) *cobra.Command {
	var utc, unix bool

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Print the current date and time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printNow(utc, unix)
		},
	}
	cmd.Flags().BoolVar(&utc, "utc", false, "use UTC instead of the system time zone")
	cmd.Flags().BoolVar(&unix, "unix", false, "print Unix seconds")
	return cmd
}

func newUTCNowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "utcnow",
		Short: "Print the current date and time in UTC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printNow(true, false)
		},
	}
}

func (a *app) printNow(utc, unix bool) error {
	var zone zoned.Zone
	if utc {
		zone = zoned.UTC
	}
	v, err := a.resolver.Now(zone)
	if err != nil {
		return err
	}
	if unix {
		a.out.Value(strconv.FormatInt(v.Time().Unix(), 10))
		return nil
	}
	a.out.Value(v.String())
	return nil
}
