package handlers

import (
	"time"

	"fleetdesk/internal/services"
	"fleetdesk/internal/utils"
	"fleetdesk/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService services.ReportService
	logger        *logger.Logger
}

func NewReportHandler(reportService services.ReportService, logger *logger.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// Usage returns fleet usage aggregates for a date range.
// GET /api/v1/reports/usage?start=2026-08-01&end=2026-08-31
func (h *ReportHandler) Usage(c *gin.Context) {
	start, err := parseReportDate(c.Query("start"))
	if err != nil {
		utils.BadRequestResponse(c, "start must be an RFC 3339 timestamp or YYYY-MM-DD date")
		return
	}
	end, err := parseReportDate(c.Query("end"))
	if err != nil {
		utils.BadRequestResponse(c, "end must be an RFC 3339 timestamp or YYYY-MM-DD date")
		return
	}

	report, err := h.reportService.UsageReport(c.Request.Context(), start, end)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Usage report", report)
}

func parseReportDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
