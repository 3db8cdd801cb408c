package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/comfortablynick/sysinfo/pkg/format"
	"github.com/comfortablynick/sysinfo/pkg/log"
	"github.com/comfortablynick/sysinfo/pkg/memory"
	"github.com/comfortablynick/sysinfo/pkg/uptime"
)

// ErrUnknownMetric is returned for a metric name the server does not serve.
var ErrUnknownMetric = errors.New("unknown metric")

// maxCPUInterval bounds how long a request may hold a CPU sample.
const maxCPUInterval = 10 * time.Second

// getMetric handles GET /metric/:name and answers with one text line.
// Query parameters mirror the command-line flags of the same metric.
func (ms *MetricsServer) getMetric(ctx echo.Context) error {
	name := ctx.Param("name")
	q := queryFlags{ctx: ctx}
	reqCtx := ctx.Request().Context()

	var (
		out string
		err error
	)

	switch name {
	case "memory", "m":
		opts := memory.Options{
			Percent:  q.boolean("percent", false),
			UsedOnly: q.boolean("used", false),
			Decimal:  q.boolean("decimal", ms.defaults.Decimal),
		}
		if q.err != nil {
			return badRequest(ctx, q.err)
		}
		out, err = ms.reporter.Memory(reqCtx, opts)
	case "cpu", "c":
		interval := q.duration("interval", ms.defaults.CPUInterval)
		breakdown := q.boolean("test", false)
		if q.err == nil && interval > maxCPUInterval {
			q.err = fmt.Errorf("interval %s exceeds %s", interval, maxCPUInterval)
		}
		if q.err != nil {
			return badRequest(ctx, q.err)
		}
		var lines []string
		lines, err = ms.reporter.CPU(reqCtx, interval, breakdown)
		out = strings.Join(lines, "\n")
	case "load", "l":
		n := q.integer("number", ms.defaults.LoadCount)
		if q.err != nil {
			return badRequest(ctx, q.err)
		}
		out, err = ms.reporter.Load(reqCtx, n)
		if errors.Is(err, format.ErrInvalidLoadCount) {
			return badRequest(ctx, err)
		}
	case "temp", "t":
		celsius := q.boolean("celsius", ms.defaults.Celsius)
		if q.err != nil {
			return badRequest(ctx, q.err)
		}
		out, err = ms.reporter.Temperature(reqCtx, celsius)
	case "uptime", "u":
		policy := uptime.Policy{
			WeekAware: q.boolean("weeks", ms.defaults.Uptime.WeekAware),
			Precise:   q.boolean("precise", ms.defaults.Uptime.Precise),
		}
		if q.err != nil {
			return badRequest(ctx, q.err)
		}
		out, err = ms.reporter.Uptime(reqCtx, policy)
	default:
		return ctx.JSON(http.StatusNotFound, map[string]string{
			"error": fmt.Sprintf("%s: %q", ErrUnknownMetric, name),
		})
	}

	if err != nil {
		log.Error().Err(err).Str("metric", name).Msg("Failed to read metric")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
	}

	return ctx.String(http.StatusOK, out+"\n")
}

// queryFlags reads typed query parameters and keeps the first parse error.
type queryFlags struct {
	ctx echo.Context
	err error
}

func (q *queryFlags) boolean(name string, fallback bool) bool {
	raw := q.ctx.QueryParam(name)
	if raw == "" || q.err != nil {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		q.err = fmt.Errorf("query parameter %s: %w", name, err)
		return fallback
	}
	return v
}

func (q *queryFlags) integer(name string, fallback int) int {
	raw := q.ctx.QueryParam(name)
	if raw == "" || q.err != nil {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		q.err = fmt.Errorf("query parameter %s: %w", name, err)
		return fallback
	}
	return v
}

func (q *queryFlags) duration(name string, fallback time.Duration) time.Duration {
	raw := q.ctx.QueryParam(name)
	if raw == "" || q.err != nil {
		return fallback
	}
	// Bare numbers are seconds, as on the command line.
	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		q.err = fmt.Errorf("query parameter %s: %w", name, err)
		return fallback
	}
	return v
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, map[string]string{
		"error": err.Error(),
	})
}
