package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/dashboard"
)

type dashboardApi struct {
	svc *dashboard.Service
}

func registerDashboardAPI(g *echo.Group, svc *dashboard.Service) {
	api := dashboardApi{svc: svc}
	g.GET("/dashboard", api.stats)
}

func (api *dashboardApi) stats(ctx echo.Context) error {
	now := time.Now().UTC()
	stats, err := api.svc.Stats(ctx.Request().Context(), now.Format(core.DateFormat), now.Format(core.MonthFormat))
	if err != nil {
		return errors.Wrap(err, "computing dashboard stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}
