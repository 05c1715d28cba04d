package api

import (
	"net/http"
	"time"

	"fittrack/workout-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the reporting service dependency.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetWorkoutSummary aggregates the caller's completed workouts, optionally
// restricted by `from` and `to` query parameters (both must be present for
// the range to apply).
func (h *ReportHandler) GetWorkoutSummary(c *gin.Context) {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	from, ok := parseDateParam(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateParam(c, "to")
	if !ok {
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), ownerID, from, to)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to build workout summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// parseDateParam reads an optional date query parameter, accepting RFC 3339
// or a plain YYYY-MM-DD date. On a malformed value it writes a 400 response
// and returns ok=false.
func parseDateParam(c *gin.Context, name string) (*time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, true
	}
	abortWithError(c, http.StatusBadRequest, "Invalid date for parameter "+name)
	return nil, false
}
