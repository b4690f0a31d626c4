package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/manea/internal/domain/models"
	"github.com/mamadbah2/manea/internal/server/middleware"
	"github.com/mamadbah2/manea/internal/service/medical"
)

// MedicalHandler handles medical event endpoints.
type MedicalHandler struct {
	svc    *medical.Service
	logger *zap.Logger
}

// NewMedicalHandler constructs the medical HTTP adapter.
func NewMedicalHandler(svc *medical.Service, logger *zap.Logger) *MedicalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MedicalHandler{svc: svc, logger: logger}
}

type medicalEventRequest struct {
	AnimalID    string                  `json:"animal_id" binding:"required"`
	Kind        models.MedicalEventKind `json:"kind" binding:"required"`
	Description string                  `json:"description"`
	Medication  string                  `json:"medication"`
	Dose        string                  `json:"dose"`
	PerformedBy string                  `json:"performed_by"`
	EventDate   string                  `json:"event_date" binding:"required"`
	NextDueDate string                  `json:"next_due_date"`
	Cost        *float64                `json:"cost"`
}

// Create records a new medical event. A next-due date makes the engine
// derive a follow-up alert.
func (h *MedicalHandler) Create(c *gin.Context) {
	var req medicalEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid medical event payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	event, err := h.svc.RecordEvent(c.Request.Context(), middleware.PrincipalID(c), medical.EventInput{
		AnimalID:    req.AnimalID,
		Kind:        req.Kind,
		Description: req.Description,
		Medication:  req.Medication,
		Dose:        req.Dose,
		PerformedBy: req.PerformedBy,
		EventDate:   req.EventDate,
		NextDueDate: req.NextDueDate,
		Cost:        req.Cost,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// List returns medical events, optionally filtered by animal.
func (h *MedicalHandler) List(c *gin.Context) {
	events, err := h.svc.ListEvents(c.Request.Context(), c.Query("animal_id"), 0)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
