package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mnogodumalon/kurs96/core/dashboard"
)

type dashboardApi struct {
	svc *dashboard.Service
}

func registerDashboardAPI(g *echo.Group, svc *dashboard.Service) {
	api := dashboardApi{svc: svc}
	g.GET("/dashboard", api.summary)
}

func (api *dashboardApi) summary(ctx echo.Context) error {
	summary, err := api.svc.Summary(reqCtx(ctx), time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "building dashboard summary")
	}
	return ctx.JSON(http.StatusOK, summary)
}
