package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/manea/internal/service/dashboard"
	"github.com/mamadbah2/manea/internal/service/export"
)

// DashboardHandler serves the herd summary and the inventory export.
type DashboardHandler struct {
	svc       *dashboard.Service
	exportSvc *export.Service
	logger    *zap.Logger
}

// NewDashboardHandler constructs the dashboard HTTP adapter. exportSvc may
// be nil when the sheets export is not configured.
func NewDashboardHandler(svc *dashboard.Service, exportSvc *export.Service, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, exportSvc: exportSvc, logger: logger}
}

// Stats returns the current herd summary.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportInventory pushes the herd inventory to the configured spreadsheet.
func (h *DashboardHandler) ExportInventory(c *gin.Context) {
	if h.exportSvc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sheets export is not configured"})
		return
	}

	exported, err := h.exportSvc.ExportInventory(c.Request.Context(), c.Query("farm_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exported": exported})
}
