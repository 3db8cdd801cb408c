// Package cli builds the sysinfo command tree from a single command table.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/comfortablynick/sysinfo/pkg/config"
	"github.com/comfortablynick/sysinfo/pkg/log"
	"github.com/comfortablynick/sysinfo/pkg/provider"
	"github.com/comfortablynick/sysinfo/pkg/report"
)

const appName = "sysinfo"

// ProviderFactory builds the metrics provider selected at startup.
type ProviderFactory func(name string, opts provider.Options) (provider.Provider, error)

type globalOptions struct {
	verbosity    int
	quiet        bool
	version      bool
	example      bool
	configPath   string
	providerName string
}

// App holds the state of one invocation.
type App struct {
	Version     string
	Stdout      io.Writer
	Stderr      io.Writer
	NewProvider ProviderFactory

	global   globalOptions
	opts     options
	cfg      *config.Config
	reporter *report.Reporter
}

// New returns an App writing to the process stdout/stderr.
func New(version string) *App {
	return &App{
		Version:     version,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		NewProvider: provider.New,
	}
}

// Execute parses args and runs the selected command. No arguments at all
// runs memory; options without a command print help.
func (app *App) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{commandTable[0].name}
	}

	root := app.rootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (app *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName + " [options] COMMAND",
		Short:             "Print host metrics as one-line strings",
		Long:              "Print host metrics such as memory, cpu load and uptime as one-line strings.",
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
		RunE:              app.runRoot,
	}
	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.CountVarP(&app.global.verbosity, "verbose", "v", "increase log verbosity (e.g., -vv, -vvv)")
	pf.BoolVarP(&app.global.quiet, "quiet", "q", false, "discard all log output")
	pf.StringVar(&app.global.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.StringVar(&app.global.providerName, "provider", "", "metrics provider: auto, procfs or gopsutil")

	root.Flags().BoolVarP(&app.global.version, "version", "V", false, "print version and exit")
	root.Flags().BoolVarP(&app.global.example, "example", "e", false, "show example output of each command")

	for _, spec := range commandTable {
		root.AddCommand(app.command(spec))
	}
	return root
}

// setup runs before every command: logging, then config and provider
// unless only the version was asked for.
func (app *App) setup(cmd *cobra.Command, _ []string) error {
	log.Init(log.Config{
		Verbosity: app.global.verbosity,
		Quiet:     app.global.quiet,
		Out:       app.Stderr,
	})

	if app.global.version {
		return nil
	}

	path := app.global.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if app.global.providerName != "" {
		cfg.Provider = app.global.providerName
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	app.cfg = cfg

	p, err := app.NewProvider(cfg.Provider, cfg.ProviderOptions())
	if err != nil {
		return err
	}
	app.reporter = report.New(p)

	log.Debug().
		Str("config", path).
		Str("provider", cfg.Provider).
		Str("command", cmd.Name()).
		Msg("Setup complete")
	return nil
}

func (app *App) runRoot(cmd *cobra.Command, _ []string) error {
	switch {
	case app.global.version:
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, app.Version)
		return err
	case app.global.example:
		return app.runExample(cmd)
	default:
		return cmd.Help()
	}
}
