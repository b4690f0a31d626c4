package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/manea/internal/domain/models"
	"github.com/mamadbah2/manea/internal/server/middleware"
	"github.com/mamadbah2/manea/internal/service/alerts"
)

// AlertHandler handles alert endpoints.
type AlertHandler struct {
	svc    *alerts.Service
	logger *zap.Logger
}

// NewAlertHandler constructs the alert HTTP adapter.
func NewAlertHandler(svc *alerts.Service, logger *zap.Logger) *AlertHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlertHandler{svc: svc, logger: logger}
}

type alertRequest struct {
	AnimalID string           `json:"animal_id" binding:"required"`
	Kind     models.AlertKind `json:"kind" binding:"required"`
	Severity int              `json:"severity"`
	Title    string           `json:"title" binding:"required"`
	Message  string           `json:"message"`
	DueDate  string           `json:"due_date"`
}

// Create raises a manual alert.
func (h *AlertHandler) Create(c *gin.Context) {
	var req alertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid alert payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Severity == 0 {
		req.Severity = models.SeverityMedium
	}

	alert, err := h.svc.Create(c.Request.Context(), middleware.PrincipalID(c), alerts.CreateInput{
		AnimalID: req.AnimalID,
		Kind:     req.Kind,
		Severity: req.Severity,
		Title:    req.Title,
		Message:  req.Message,
		DueDate:  req.DueDate,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, alert)
}

// List returns alerts ordered by severity. The active query parameter
// filters by state; it defaults to active-only.
func (h *AlertHandler) List(c *gin.Context) {
	active := true
	if raw := c.Query("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "active must be a boolean"})
			return
		}
		active = parsed
	}

	list, err := h.svc.List(c.Request.Context(), &active)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Resolve closes an alert exactly once.
func (h *AlertHandler) Resolve(c *gin.Context) {
	alert, err := h.svc.Resolve(c.Request.Context(), middleware.PrincipalID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}
