package api

import (
	"github.com/labstack/echo/v4"
)

// Router registers every API handler on the echo instance.
type Router struct {
	drawdown *DrawdownEchoHandler
	health   *HealthEchoHandler
}

func NewRouter(drawdown *DrawdownEchoHandler, health *HealthEchoHandler) *Router {
	return &Router{drawdown: drawdown, health: health}
}

func (r *Router) RegisterRoutes(e *echo.Echo) {
	r.drawdown.RegisterRoutes(e)
	r.health.RegisterRoutes(e)
}
