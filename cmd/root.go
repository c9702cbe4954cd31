// Package cmd implements the earthframes command line tool.
package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/echoflaresat/earthframes/config"
	"github.com/echoflaresat/earthframes/earth"
	"github.com/echoflaresat/earthframes/eop"
	"github.com/echoflaresat/earthframes/logging"
	"github.com/echoflaresat/earthframes/timescale"
)

// RootOptions holds the global flags and the state built from them before
// a subcommand runs.
type RootOptions struct {
	ConfigPath string
	EOPFile    string
	LogLevel   string
	LogFormat  string
	Time       string
	Workers    int

	cfg    config.Config
	logger *slog.Logger
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "earthframes",
		Short: "Convert positions between the ECI and ECEF frames",
		Long: `Convert positions between the Earth-centred inertial (GCRS) and
Earth-centred Earth-fixed (ITRS) frames with the IAU 2006 CIO-based procedure
and IAU 2000B nutation, using UT1-UTC and polar motion from an IERS
finals2000A file.

Positions are metres. Times are RFC 3339 UTC and default to now. Put --
before arguments that start with a minus sign.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&opts.EOPFile, "eop", "", "IERS finals2000A file (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "log format (text|json)")
	cmd.PersistentFlags().StringVarP(&opts.Time, "time", "t", "", "UTC time in RFC 3339 format (e.g. 2025-08-02T15:04:05Z); defaults to now")
	cmd.PersistentFlags().IntVar(&opts.Workers, "workers", 0, "batch worker limit (0 uses config or GOMAXPROCS)")

	cmd.AddCommand(NewECIToECEFCommand(opts))
	cmd.AddCommand(NewECEFToECICommand(opts))
	cmd.AddCommand(NewEOPCommand(opts))
	cmd.AddCommand(NewGeodeticCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))

	return cmd
}

// setup merges the config file with flags set on the command line.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if o.ConfigPath != "" {
		var err error
		if cfg, err = config.Load(o.ConfigPath); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("eop") {
		cfg.EOPFile = o.EOPFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.LogFormat
	}
	if flags.Changed("workers") {
		cfg.Workers = o.Workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	format, _ := logging.ParseFormat(cfg.Log.Format)
	o.cfg = cfg
	o.logger = logging.New(cmd.ErrOrStderr(), level, format)
	return nil
}

func (o *RootOptions) converter() *earth.Converter {
	store := eop.NewStore(eop.FromFile(o.cfg.EOPFile), eop.WithLogger(o.logger))
	opts := []earth.Option{earth.WithLogger(o.logger)}
	if o.cfg.Workers > 0 {
		opts = append(opts, earth.WithWorkers(o.cfg.Workers))
	}
	return earth.NewConverter(store, opts...)
}

// instant parses the --time flag as a UTC instant.
func (o *RootOptions) instant() (timescale.Instant, error) {
	return parseUTC(o.Time)
}

func parseUTC(s string) (timescale.Instant, error) {
	if s == "" {
		return timescale.FromTime(time.Now(), timescale.UTC), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return timescale.Instant{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return timescale.FromTime(t.UTC(), timescale.UTC), nil
}
