package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/comfortablynick/sysinfo/pkg/memory"
	"github.com/comfortablynick/sysinfo/pkg/uptime"
)

// example is one labelled line of the -e output.
type example struct {
	label  string
	render func(cmd *cobra.Command, app *App) (string, error)
}

// examples skips cpu, which would block for a sample interval.
var examples = []example{
	{"memory", func(cmd *cobra.Command, app *App) (string, error) {
		return app.reporter.Memory(cmd.Context(), memory.Options{Decimal: app.cfg.DecimalUnits})
	}},
	{"memory -p", func(cmd *cobra.Command, app *App) (string, error) {
		return app.reporter.Memory(cmd.Context(), memory.Options{Percent: true})
	}},
	{"memory -u", func(cmd *cobra.Command, app *App) (string, error) {
		return app.reporter.Memory(cmd.Context(), memory.Options{UsedOnly: true, Decimal: app.cfg.DecimalUnits})
	}},
	{"load", func(cmd *cobra.Command, app *App) (string, error) {
		return app.reporter.Load(cmd.Context(), app.cfg.LoadCount)
	}},
	{"load -n 1", func(cmd *cobra.Command, app *App) (string, error) {
		return app.reporter.Load(cmd.Context(), 1)
	}},
	{"temp", func(cmd *cobra.Command, app *App) (string, error) {
		return app.reporter.Temperature(cmd.Context(), app.cfg.Celsius)
	}},
	{"temp -c", func(cmd *cobra.Command, app *App) (string, error) {
		return app.reporter.Temperature(cmd.Context(), true)
	}},
	{"uptime", func(cmd *cobra.Command, app *App) (string, error) {
		return app.reporter.Uptime(cmd.Context(), app.cfg.Uptime)
	}},
	{"uptime -w", func(cmd *cobra.Command, app *App) (string, error) {
		return app.reporter.Uptime(cmd.Context(), uptime.Policy{WeekAware: true})
	}},
	{"uptime -p", func(cmd *cobra.Command, app *App) (string, error) {
		return app.reporter.Uptime(cmd.Context(), uptime.Policy{Precise: true})
	}},
}

// runExample prints every example line. A failed reading is shown in place
// of its value rather than aborting the rest.
func (app *App) runExample(cmd *cobra.Command) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	for _, ex := range examples {
		out, err := ex.render(cmd, app)
		if err != nil {
			out = "error: " + err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\n", ex.label, out)
	}

	return w.Flush()
}
