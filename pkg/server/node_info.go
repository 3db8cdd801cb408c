package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/comfortablynick/sysinfo/pkg/report"
	"github.com/comfortablynick/sysinfo/pkg/uptime"
)

// getNodeInfo handles GET /node/info. Metrics that fail to read are
// listed under "errors"; the response is still 200.
func (ms *MetricsServer) getNodeInfo(ctx echo.Context) error {
	q := queryFlags{ctx: ctx}
	opts := report.Options{
		Decimal: q.boolean("decimal", ms.defaults.Decimal),
		Celsius: q.boolean("celsius", ms.defaults.Celsius),
		Uptime: uptime.Policy{
			WeekAware: q.boolean("weeks", ms.defaults.Uptime.WeekAware),
			Precise:   q.boolean("precise", ms.defaults.Uptime.Precise),
		},
	}
	if q.err != nil {
		return badRequest(ctx, q.err)
	}

	return ctx.JSON(http.StatusOK, ms.reporter.NodeInfo(ctx.Request().Context(), opts))
}
