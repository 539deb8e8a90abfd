package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vitalis-hms/clinic_ledger_app/internal/core/domain"
	portssvc "github.com/vitalis-hms/clinic_ledger_app/internal/core/ports/services"
	"github.com/vitalis-hms/clinic_ledger_app/internal/dto"
	"github.com/vitalis-hms/clinic_ledger_app/internal/middleware"
)

// reportingHandler handles HTTP requests for ledger aggregations.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// registerReportingRoutes registers reporting specific routes.
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := group.Group("/reports")
	{
		reports.GET("/cash-flow", h.getCashFlow)
	}
}

// resolvePeriod turns the query parameters into a domain period. A named
// window wins over an explicit range; with neither, the current month is used.
func resolvePeriod(params dto.CashFlowParams, now time.Time) (domain.Period, error) {
	switch params.Window {
	case "current_month":
		return domain.CurrentMonth(now), nil
	case "previous_month":
		return domain.PreviousMonth(now), nil
	case "current_year":
		return domain.CurrentYear(now), nil
	}
	if params.From != nil && params.To != nil {
		return domain.NewPeriod(*params.From, *params.To)
	}
	return domain.CurrentMonth(now), nil
}

// getCashFlow godoc
// @Summary Cash flow report
// @Description Computes settled receita and despesa totals, net balance and pending exposure for a period.
// @Tags reports
// @Produce json
// @Param window query string false "current_month, previous_month or current_year"
// @Param from query string false "Period start (YYYY-MM-DD), used with to"
// @Param to query string false "Period end (YYYY-MM-DD), used with from"
// @Success 200 {object} dto.CashFlowResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.CashFlowParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	clinicID, _, ok := requestScope(c, logger)
	if !ok {
		return
	}

	period, err := resolvePeriod(params, time.Now().UTC())
	if err != nil {
		respondWithError(c, logger, err, "Invalid reporting period")
		return
	}

	summary, err := h.reportingService.GetCashFlow(c.Request.Context(), clinicID, period)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute cash flow")
		return
	}

	c.JSON(http.StatusOK, dto.ToCashFlowResponse(summary))
}
