// Package cmd implements the dt command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jparise/dt/internal/config"
	"github.com/jparise/dt/internal/output"
	"github.com/jparise/dt/internal/timeparse"
	"github.com/jparise/dt/internal/zoned"
)

// colorMode represents when to use colored output.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

// String is used both by fmt.Print and by Cobra in help text.
func (c *colorMode) String() string {
	return string(*c)
}

// Set must have pointer receiver to validate and set the value.
func (c *colorMode) Set(v string) error {
	switch v {
	case "auto", "always", "never":
		*c = colorMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"auto\", \"always\", or \"never\"")
	}
}

// Type is only used in help text.
func (c *colorMode) Type() string {
	return "colorMode"
}

var version = "dev"

// app is the state shared by every command of one invocation.
type app struct {
	v     *viper.Viper
	now   func() time.Time
	level slog.LevelVar

	// Flags.
	cfgFile string
	color   colorMode
	debug   bool

	cfg      config.Config
	resolver *timeparse.Resolver
	out      *output.Output
}

func newApp() *app {
	return &app{
		v:     viper.New(),
		now:   time.Now,
		color: colorAuto,
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dt",
		Short: "Parse, convert, and compute with dates and times",
		Long: `dt parses loosely written dates and times into zoned values and does
calendar-correct arithmetic with them.

<datetime> can be:
  2017-08-25                          midnight in the system time zone
  08/25/17, 08/25/2017                US month/day/year
  2017-08-25T12:00:00-05:00[America/Chicago]
                                      RFC 9557, with offset, zone, or both
  Fri, 25 Aug 2017 12:00:00 -0500     RFC 2822 and git log styles
  @1503680400, 1503680400             Unix seconds
  2017-08-25 12:00, 12:00             civil date and time, time of day

<span> is an ISO 8601 style duration with an optional leading P and sign,
such as P1y2m, 1d, T1h30m, -P2w, or a count and unit such as 10days.

The system time zone comes from --timezone, DT_TIMEZONE, the config file,
or the TZ environment variable, and defaults to UTC.

Examples:
  dt to 2017-08-25
  dt add 1m 2024-01-31
  dt diff 2019-05-10T09:59:12-07:00 2024-08-07T09:36:42-05:00
  dt diff --as hr 2019-05-10 2024-08-07
  dt part week 2021-01-03
  dt format "%A %d %B %Y" 2017-08-25
  git log --format=%cd | dt parse`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "",
		"config file (default $XDG_CONFIG_HOME/dt/config.yaml)")
	flags.Var(&a.color, "color",
		"colorize output: auto, always, never")
	flags.BoolVar(&a.debug, "debug", false,
		"log parser decisions to stderr")
	flags.String("timezone", "",
		"system time zone for inputs without one (e.g., America/Chicago)")
	flags.String("offset-conflict", "offset",
		"when an offset disagrees with a zone: offset, zone, or reject")
	flags.IntP("jobs", "j", 10,
		"maximum concurrent resolutions for parse")

	for key, flag := range map[string]string{
		"color":           "color",
		"debug":           "debug",
		"timezone":        "timezone",
		"offset_conflict": "offset-conflict",
		"jobs":            "jobs",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(
		newNowCmd(a),
		newUTCNowCmd(a),
		newToCmd(a),
		newFormatCmd(a),
		newPartCmd(a),
		newAddCmd(a),
		newDiffCmd(a),
		newParseCmd(a),
		newUnitsCmd(a),
		newFormatsCmd(a),
	)
	return rootCmd
}

// setup loads configuration and builds the resolver and output shared by
// every command.
func (a *app) setup(cmd *cobra.Command) error {
	a.level.Set(slog.LevelWarn)
	if a.debug {
		a.level.Set(slog.LevelDebug)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: &a.level})))

	if err := config.Init(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	if cfg.Debug {
		a.level.Set(slog.LevelDebug)
	}
	if file := a.v.ConfigFileUsed(); file != "" {
		slog.Debug("loaded config", "file", file)
	}
	a.cfg = cfg

	zone, err := cfg.SystemZone()
	if err != nil {
		return err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return err
	}
	slog.Debug("configured", "zone", zone.Name(), "offset_conflict", policy.String(), "jobs", cfg.Jobs)

	a.resolver = timeparse.NewResolver(timeparse.Config{
		SystemZone: zone,
		Now:        a.now,
		Policy:     policy,
		Logger:     slog.Default(),
	})

	terminal := term.FromEnv()
	_, toFile := cmd.OutOrStdout().(*os.File)
	isTTY := toFile && terminal.IsTerminalOutput()

	var colorize bool
	switch colorMode(cfg.Color) {
	case colorAlways:
		colorize = true
	case colorNever:
		colorize = false
	case colorAuto:
		colorize = isTTY && terminal.IsColorEnabled()
	}

	width := 80
	if isTTY {
		if w, _, err := terminal.Size(); err == nil && w > 0 {
			width = w
		}
	}

	a.out = output.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), colorize, isTTY, width)
	return nil
}

// resolveArg resolves args[i], or returns the current instant in the system
// zone when there is no such argument.
func (a *app) resolveArg(args []string, i int) (zoned.Value, error) {
	if i >= len(args) {
		return a.resolver.Now(zoned.Zone{})
	}
	return a.resolver.Resolve(args[i])
}

// formatFlags registers --json and --yaml on cmd.
type formatFlags struct {
	json bool
	yaml bool
}

func (f *formatFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.json, "json", false, "output JSON")
	cmd.Flags().BoolVar(&f.yaml, "yaml", false, "output YAML")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

func (f *formatFlags) format() output.Format {
	switch {
	case f.json:
		return output.FormatJSON
	case f.yaml:
		return output.FormatYAML
	}
	return output.FormatText
}

// Execute runs the dt command line. Failures are reported on stderr before
// they are returned.
func Execute() error {
	a := newApp()
	return a.execute(newRootCmd(a))
}

func (a *app) execute(root *cobra.Command) error {
	err := root.Execute()
	if err == nil {
		return nil
	}
	out := a.out
	if out == nil {
		// Configuration failed before the output was built.
		out = output.New(root.OutOrStdout(), root.ErrOrStderr(), false, false, 80)
	}
	out.Errorf("%v", err)
	return errors.WithMessage(err, "dt")
}
