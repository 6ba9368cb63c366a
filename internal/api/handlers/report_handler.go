package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pulseboard-app/pulseboard/internal/api/dto"
	"github.com/pulseboard-app/pulseboard/internal/api/middleware"
	"github.com/pulseboard-app/pulseboard/internal/domain/category"
	"github.com/pulseboard-app/pulseboard/internal/domain/event"
	"github.com/pulseboard-app/pulseboard/internal/domain/report"
	"github.com/pulseboard-app/pulseboard/pkg/config"
	"go.uber.org/zap"
)

// ReportHandler handles HTTP requests for the per-category report view
type ReportHandler struct {
	categories category.Service
	events     event.Service
	cfg        config.ReportConfig
	logger     *zap.Logger
}

// NewReportHandler creates a new ReportHandler instance
func NewReportHandler(categories category.Service, events event.Service, cfg config.ReportConfig, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		categories: categories,
		events:     events,
		cfg:        cfg,
		logger:     logger,
	}
}

// resolveCategory authorizes the path category for the caller.
func (h *ReportHandler) resolveCategory(c *gin.Context) (*category.EventCategory, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return nil, false
	}

	cat, err := h.categories.GetByName(c.Request.Context(), c.Param("name"), userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, category.ErrCategoryNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return nil, false
	}
	return cat, true
}

// GetEventsPage godoc
// @Summary Get one page of a category's events
// @Description Fetch a page of events for a category within a time range
// @Tags report
// @Produce json
// @Security BearerAuth
// @Param name path string true "Category name"
// @Param timeRange query string false "Time range (today, week, month)"
// @Param page query int false "1-indexed page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.EventsPageResponse "Events retrieved successfully"
// @Failure 400 {object} map[string]string "Invalid time range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/categories/{name}/events [get]
func (h *ReportHandler) GetEventsPage(c *gin.Context) {
	cat, ok := h.resolveCategory(c)
	if !ok {
		return
	}

	rng, err := event.ParseTimeRange(c.Query("timeRange"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pagination := report.PaginationFromQuery(c.Query("page"), c.Query("limit"), h.cfg.MaxPageSize)

	events, total, err := h.events.GetPage(c.Request.Context(), cat.ID, rng, pagination.PageIndex, pagination.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.EventsPageResponse{
		Events:     EventsToResponse(events, cat.Name),
		TotalCount: total,
		Page:       pagination.PageIndex + 1,
		PageSize:   pagination.PageSize,
		Range:      string(rng),
	}})
}

// GetReport godoc
// @Summary Get the report view for a category
// @Description Build the full report view: columns, events, numeric sums
// @Tags report
// @Produce json
// @Security BearerAuth
// @Param name path string true "Category name"
// @Param timeRange query string false "Time range (today, week, month)"
// @Param page query int false "1-indexed page number"
// @Param limit query int false "Page size"
// @Param columns query string false "Column derivation scope (page_union, first_event)"
// @Success 200 {object} dto.ReportResponse "Report built successfully"
// @Failure 400 {object} map[string]string "Invalid time range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Category not found"
// @Router /api/categories/{name}/report [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	cat, ok := h.resolveCategory(c)
	if !ok {
		return
	}

	rng, err := event.ParseTimeRange(c.Query("timeRange"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hasEvents, err := h.events.HasEvents(c.Request.Context(), cat.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	pagination := report.PaginationFromQuery(c.Query("page"), c.Query("limit"), h.cfg.MaxPageSize)

	source := report.ServiceSource{Events: h.events, CategoryID: cat.ID}
	view := report.NewView(cat.Name, hasEvents, pagination, source, h.logger)
	if c.Query("columns") == "first_event" {
		view.SetColumnScope(report.ScopeFirstEvent)
	}

	// Open directly on the requested tab so the load is a single fetch.
	if err := view.SetRange(rng); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := view.Load(c.Request.Context()); err != nil {
		h.logger.Error("Report load failed",
			zap.String("category", cat.Name),
			zap.Error(err))
	}

	// A failed fetch still renders: the snapshot carries the error state
	// and the client offers a retry.
	c.JSON(http.StatusOK, gin.H{"data": ReportSnapshotToResponse(view.Snapshot())})
}
