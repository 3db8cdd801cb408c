package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/comfortablynick/sysinfo/pkg/log"
	"github.com/comfortablynick/sysinfo/pkg/memory"
	"github.com/comfortablynick/sysinfo/pkg/server"
	"github.com/comfortablynick/sysinfo/pkg/uptime"
)

// ErrInvalidInterval is returned for a CPU sampling interval that is not positive.
var ErrInvalidInterval = errors.New("interval must be a positive number of seconds")

// options holds the flags of every command; each command binds its own subset.
type options struct {
	percent  bool
	used     bool
	decimal  bool
	interval float64
	test     bool
	number   int
	celsius  bool
	weeks    bool
	precise  bool
	addr     string
}

// handler produces the output lines of a command.
type handler func(ctx context.Context, app *App, flags *pflag.FlagSet) ([]string, error)

// commandSpec is one row of the command table.
type commandSpec struct {
	name  string
	alias string
	short string
	flags func(fs *pflag.FlagSet, o *options)
	run   handler
}

// commandTable lists every subcommand. The cobra tree is built from it.
var commandTable = []commandSpec{
	{
		name:  "memory",
		alias: "m",
		short: "output memory usage info",
		flags: func(fs *pflag.FlagSet, o *options) {
			fs.BoolVarP(&o.percent, "percent", "p", false, "used mem as pct of total mem")
			fs.BoolVarP(&o.used, "used", "u", false, "show used mem only")
			fs.BoolVarP(&o.decimal, "decimal", "d", false, "scale by 1000 instead of 1024")
		},
		run: runMemory,
	},
	{
		name:  "cpu",
		alias: "c",
		short: "output cpu usage info",
		flags: func(fs *pflag.FlagSet, o *options) {
			fs.Float64VarP(&o.interval, "interval", "i", 0, "interval length for sampling cpu (in seconds)")
			fs.BoolVarP(&o.test, "test", "t", false, "test cpu load aggregate and print results")
		},
		run: runCPU,
	},
	{
		name:  "load",
		alias: "l",
		short: "output load average",
		flags: func(fs *pflag.FlagSet, o *options) {
			fs.IntVarP(&o.number, "number", "n", 0, "number of load averages to show (1-3)")
		},
		run: runLoad,
	},
	{
		name:  "temp",
		alias: "t",
		short: "output cpu temp",
		flags: func(fs *pflag.FlagSet, o *options) {
			fs.BoolVarP(&o.celsius, "celcius", "c", false, "show result in degrees celcius (not fahrenheit)")
			fs.BoolVar(&o.celsius, "celsius", false, "show result in degrees celsius (not fahrenheit)")
			_ = fs.MarkHidden("celsius")
		},
		run: runTemp,
	},
	{
		name:  "uptime",
		alias: "u",
		short: "output system uptime",
		flags: func(fs *pflag.FlagSet, o *options) {
			fs.BoolVarP(&o.weeks, "weeks", "w", false, "show whole weeks instead of folding them into days")
			fs.BoolVarP(&o.precise, "precise", "p", false, "show hours and minutes that would otherwise be omitted")
		},
		run: runUptime,
	},
	{
		name:  "serve",
		alias: "s",
		short: "serve metrics over HTTP",
		flags: func(fs *pflag.FlagSet, o *options) {
			fs.StringVarP(&o.addr, "addr", "a", "", "listen address")
		},
		run: runServe,
	},
}

func runMemory(ctx context.Context, app *App, _ *pflag.FlagSet) ([]string, error) {
	out, err := app.reporter.Memory(ctx, memory.Options{
		Percent:  app.opts.percent,
		UsedOnly: app.opts.used,
		Decimal:  app.opts.decimal || app.cfg.DecimalUnits,
	})
	if err != nil {
		return nil, err
	}
	return []string{out}, nil
}

func runCPU(ctx context.Context, app *App, flags *pflag.FlagSet) ([]string, error) {
	interval := app.cfg.CPUInterval
	if flags.Changed("interval") {
		if app.opts.interval <= 0 {
			return nil, fmt.Errorf("%w: got %v", ErrInvalidInterval, app.opts.interval)
		}
		interval = time.Duration(app.opts.interval * float64(time.Second))
	}
	return app.reporter.CPU(ctx, interval, app.opts.test)
}

func runLoad(ctx context.Context, app *App, flags *pflag.FlagSet) ([]string, error) {
	n := app.cfg.LoadCount
	if flags.Changed("number") {
		n = app.opts.number
	}

	out, err := app.reporter.Load(ctx, n)
	if err != nil {
		return nil, err
	}
	return []string{out}, nil
}

func runTemp(ctx context.Context, app *App, _ *pflag.FlagSet) ([]string, error) {
	out, err := app.reporter.Temperature(ctx, app.opts.celsius || app.cfg.Celsius)
	if err != nil {
		return nil, err
	}
	return []string{out}, nil
}

func runUptime(ctx context.Context, app *App, _ *pflag.FlagSet) ([]string, error) {
	out, err := app.reporter.Uptime(ctx, app.uptimePolicy())
	if err != nil {
		return nil, err
	}
	return []string{out}, nil
}

func runServe(ctx context.Context, app *App, flags *pflag.FlagSet) ([]string, error) {
	addr := app.cfg.Serve.Addr
	if flags.Changed("addr") {
		addr = app.opts.addr
	}

	srv := server.NewMetricsServer(app.reporter, server.Defaults{
		Decimal:     app.cfg.DecimalUnits,
		Celsius:     app.cfg.Celsius,
		Uptime:      app.cfg.Uptime,
		LoadCount:   app.cfg.LoadCount,
		CPUInterval: app.cfg.CPUInterval,
	}, app.Version)

	return nil, srv.Start(ctx, addr)
}

func (app *App) uptimePolicy() uptime.Policy {
	return uptime.Policy{
		WeekAware: app.opts.weeks || app.cfg.Uptime.WeekAware,
		Precise:   app.opts.precise || app.cfg.Uptime.Precise,
	}
}

// command turns a table row into a cobra command.
func (app *App) command(spec commandSpec) *cobra.Command {
	cmd := &cobra.Command{
		Use:     spec.name + " [options]",
		Aliases: []string{spec.alias},
		Short:   spec.short,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.run(cmd, spec)
		},
	}
	spec.flags(cmd.Flags(), &app.opts)
	return cmd
}

func (app *App) run(cmd *cobra.Command, spec commandSpec) error {
	log.Debug().Str("command", spec.name).Msg("Running command")

	lines, err := spec.run(cmd.Context(), app, cmd.Flags())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
