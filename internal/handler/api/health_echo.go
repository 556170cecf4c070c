package api

import (
	domrepo "github.com/akal0/profitabledge-sub000/internal/domain/repository"
	xhttp "github.com/akal0/profitabledge-sub000/pkg/http"
	xlogger "github.com/akal0/profitabledge-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
)

// HealthEchoHandler reports readiness of the trade store.
type HealthEchoHandler struct {
	logger *xlogger.Logger
	trades domrepo.TradeStore
}

func NewHealthEchoHandler(logger *xlogger.Logger, trades domrepo.TradeStore) *HealthEchoHandler {
	return &HealthEchoHandler{logger: logger, trades: trades}
}

func (h *HealthEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Check)
}

func (h *HealthEchoHandler) Check(c echo.Context) error {
	if err := h.trades.Health(c.Request().Context()); err != nil {
		h.logger.Error("health check failed", xlogger.Error(err))
		return xhttp.ServiceUnavailableResponse(c, map[string]string{"status": "degraded"})
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}
