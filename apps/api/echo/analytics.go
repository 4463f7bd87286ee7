package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/placement/core/directory"
)

func registerAnalyticsAPI(g *echo.Group, svc *directory.Service) {
	g.GET("/analytics", func(ctx echo.Context) error {
		stats, err := svc.Stats()
		if err != nil {
			return errors.Wrap(err, "computing stats")
		}
		return ctx.JSON(http.StatusOK, Response{Data: stats})
	}, adminMiddleware(svc))
}
