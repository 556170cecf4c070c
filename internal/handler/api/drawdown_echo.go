package api

import (
	models "github.com/akal0/profitabledge-sub000/internal/domain/models"
	domrepo "github.com/akal0/profitabledge-sub000/internal/domain/repository"
	"github.com/akal0/profitabledge-sub000/internal/usecase"
	xhttp "github.com/akal0/profitabledge-sub000/pkg/http"
	xlogger "github.com/akal0/profitabledge-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DrawdownEchoHandler exposes the adverse-excursion analyzer over HTTP.
// The dashboard calls it once per visible trade row.
type DrawdownEchoHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.DrawdownAnalyzer
}

func NewDrawdownEchoHandler(logger *xlogger.Logger, analyzer *usecase.DrawdownAnalyzer) *DrawdownEchoHandler {
	return &DrawdownEchoHandler{logger: logger, analyzer: analyzer}
}

func (h *DrawdownEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/drawdown/:id", h.Get)
	g.POST("/drawdown", h.Batch)
}

// Get computes the drawdown result for one trade. The operation itself
// never fails: inadequate input and missing price data come back as
// displayable states inside the result.
func (h *DrawdownEchoHandler) Get(c echo.Context) error {
	req := &models.DrawdownRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	tf := domrepo.NormalizeTimeframe(req.TF)
	res := h.analyzer.ComputeDrawdown(c.Request().Context(), req.ID, tf, req.Debug)
	return xhttp.SuccessResponse(c, res)
}

// Batch evaluates a list of trades sequentially. Each element is an
// independent analysis; one bad trade does not fail the batch.
func (h *DrawdownEchoHandler) Batch(c echo.Context) error {
	req := &models.DrawdownBatchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ctx := c.Request().Context()
	tf := domrepo.NormalizeTimeframe(req.TF)
	results := make([]models.DrawdownResult, 0, len(req.IDs))
	for _, id := range req.IDs {
		if ctx.Err() != nil {
			break
		}
		results = append(results, h.analyzer.ComputeDrawdown(ctx, id, tf, req.Debug))
	}
	return xhttp.ListResponse(c, results, int64(len(results)))
}
