package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jparise/dt/internal/batch"
)

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [<datetime>...]",
		Short: "Resolve dates and times to canonical zoned form",
		Long: `Resolve each <datetime> and print its canonical form, one per line in
input order. With no arguments, inputs are read from standard input, one
per line. Inputs that fail to parse are reported as warnings; the command
fails only when every input fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			inputs := args
			if len(inputs) == 0 {
				var err error
				inputs, err = batch.ReadInputs(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}

			b := batch.New(a.out, a.resolver)
			return b.Run(ctx, &batch.Options{
				Inputs: inputs,
				Jobs:   a.cfg.Jobs,
			})
		},
	}
}
