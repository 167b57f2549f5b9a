package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/summary", h.getSummary)
		reportingGroup.GET("/by-category", h.getByCategory)
		reportingGroup.GET("/monthly", h.getMonthly)
	}
}

// getSummary godoc
// @Summary Income and expense summary
// @Description Totals of paid transactions. startDate/endDate take precedence over year+month, which takes precedence over year.
// @Tags reports
// @Produce json
// @Param startDate query string false "YYYY-MM-DD or RFC3339"
// @Param endDate query string false "YYYY-MM-DD or RFC3339, inclusive"
// @Param year query int false "Calendar year"
// @Param month query int false "Calendar month (1-12), used with year"
// @Success 200 {object} domain.Summary
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, logger, bindError(err), "Failed to bind summary query")
		return
	}
	period, err := params.ToPeriodQuery()
	if err != nil {
		respondError(c, logger, err, "Invalid summary period")
		return
	}

	summary, err := h.reportingService.Summary(c.Request.Context(), userID, period)
	if err != nil {
		respondError(c, logger, err, "Failed to generate summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getByCategory godoc
// @Summary Totals by category
// @Description Signed totals (expenses negative) of paid transactions per category, largest absolute value first.
// @Tags reports
// @Produce json
// @Param type query string false "income or expense"
// @Param startDate query string false "YYYY-MM-DD or RFC3339"
// @Param endDate query string false "YYYY-MM-DD or RFC3339, inclusive"
// @Param year query int false "Calendar year"
// @Param month query int false "Calendar month (1-12), used with year"
// @Success 200 {array} domain.CategoryTotal
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /reports/by-category [get]
func (h *reportingHandler) getByCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.ByCategoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, logger, bindError(err), "Failed to bind by-category query")
		return
	}
	period, err := params.ToPeriodQuery()
	if err != nil {
		respondError(c, logger, err, "Invalid by-category period")
		return
	}

	rows, err := h.reportingService.ByCategory(c.Request.Context(), userID, period, params.TypeFilter())
	if err != nil {
		respondError(c, logger, err, "Failed to generate category report")
		return
	}
	logger.Debug("Category report served", slog.Int("row_count", len(rows)))
	c.JSON(http.StatusOK, rows)
}

// getMonthly godoc
// @Summary Monthly income and expense
// @Description Twelve monthly buckets of paid transactions for the year, defaulting to the current year.
// @Tags reports
// @Produce json
// @Param year query int false "Calendar year"
// @Success 200 {object} domain.MonthlyReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) getMonthly(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.MonthlyParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, logger, bindError(err), "Failed to bind monthly query")
		return
	}

	report, err := h.reportingService.Monthly(c.Request.Context(), userID, params.Year)
	if err != nil {
		respondError(c, logger, err, "Failed to generate monthly report")
		return
	}
	c.JSON(http.StatusOK, report)
}
