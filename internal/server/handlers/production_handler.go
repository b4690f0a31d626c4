package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/manea/internal/server/middleware"
	"github.com/mamadbah2/manea/internal/service/production"
)

// ProductionHandler handles milk and weight record endpoints.
type ProductionHandler struct {
	svc    *production.Service
	logger *zap.Logger
}

// NewProductionHandler constructs the production HTTP adapter.
func NewProductionHandler(svc *production.Service, logger *zap.Logger) *ProductionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductionHandler{svc: svc, logger: logger}
}

type milkRecordRequest struct {
	AnimalID     string   `json:"animal_id" binding:"required"`
	RecordDate   string   `json:"record_date" binding:"required"`
	Liters       float64  `json:"liters" binding:"required"`
	FatPct       *float64 `json:"fat_pct"`
	ProteinPct   *float64 `json:"protein_pct"`
	QualityGrade string   `json:"quality_grade"`
}

// CreateMilk records a milk sample and runs the low-production check.
func (h *ProductionHandler) CreateMilk(c *gin.Context) {
	var req milkRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid milk record payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.svc.AddMilkRecord(c.Request.Context(), middleware.PrincipalID(c), production.MilkInput{
		AnimalID:     req.AnimalID,
		RecordDate:   req.RecordDate,
		Liters:       req.Liters,
		FatPct:       req.FatPct,
		ProteinPct:   req.ProteinPct,
		QualityGrade: req.QualityGrade,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ListMilk returns an animal's milk records, newest first.
func (h *ProductionHandler) ListMilk(c *gin.Context) {
	records, err := h.svc.ListMilkRecords(c.Request.Context(), c.Param("id"), 0)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

type weightRecordRequest struct {
	AnimalID     string   `json:"animal_id" binding:"required"`
	RecordDate   string   `json:"record_date" binding:"required"`
	WeightKg     float64  `json:"weight_kg" binding:"required"`
	GainKg       *float64 `json:"gain_kg"`
	FeedingNotes string   `json:"feeding_notes"`
}

// CreateWeight records a weighing; the gain is derived when absent and the
// animal's current weight is updated.
func (h *ProductionHandler) CreateWeight(c *gin.Context) {
	var req weightRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid weight record payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.svc.AddWeightRecord(c.Request.Context(), middleware.PrincipalID(c), production.WeightInput{
		AnimalID:     req.AnimalID,
		RecordDate:   req.RecordDate,
		WeightKg:     req.WeightKg,
		GainKg:       req.GainKg,
		FeedingNotes: req.FeedingNotes,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ListWeights returns an animal's weight records, newest first.
func (h *ProductionHandler) ListWeights(c *gin.Context) {
	records, err := h.svc.ListWeightRecords(c.Request.Context(), c.Param("id"), 0)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
