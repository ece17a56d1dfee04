package cmd

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jparise/dt/internal/catalog"
	"github.com/jparise/dt/internal/output"
	"github.com/jparise/dt/internal/zoned"
)

func newToCmd(a *app) *cobra.Command {
	var (
		utc    bool
		unix   int64
		format formatFlags
	)

	cmd := &cobra.Command{
		Use:   "to [<datetime>]",
		Short: "Render one instant in RFC 9557, RFC 3339, RFC 2822, and ISO 8601",
		Long: `Render one instant in several standard formats.

With no <datetime>, the current time is used. --unix reads Unix seconds
instead of a <datetime>.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var zone zoned.Zone
			if utc {
				zone = zoned.UTC
			}

			var v zoned.Value
			var err error
			if cmd.Flags().Changed("unix") {
				if len(args) > 0 {
					return errors.New("--unix cannot be combined with a <datetime> argument")
				}
				v, err = a.resolver.Unix(unix, zone)
			} else {
				v, err = a.resolveArg(args, 0)
				if err == nil && utc {
					v, err = v.In(zoned.UTC)
				}
			}
			if err != nil {
				return err
			}
			return a.out.Record(format.format(), renderings(v))
		},
	}
	cmd.Flags().BoolVar(&utc, "utc", false, "render in UTC")
	cmd.Flags().Int64Var(&unix, "unix", 0, "Unix seconds to render")
	format.register(cmd)
	return cmd
}

// renderings returns the standard renderings of v.
func renderings(v zoned.Value) []output.Field {
	fields := []output.Field{
		{Name: "rfc9557", Value: v.String()},
		{Name: "rfc3339", Value: v.Time().Format(time.RFC3339Nano)},
	}
	for _, name := range []string{"rfc2822", "iso8601_strict"} {
		e, _ := catalog.Lookup(name)
		fields = append(fields, output.Field{Name: name, Value: e.Format(v.Time())})
	}
	return fields
}
