package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/manea/internal/domain/models"
	"github.com/mamadbah2/manea/internal/server/middleware"
	"github.com/mamadbah2/manea/internal/service/herd"
	"github.com/mamadbah2/manea/pkg/clients/qrimage"
)

// AnimalHandler handles animal endpoints, including the printable QR tag.
type AnimalHandler struct {
	svc           *herd.Service
	qrClient      qrimage.Client
	publicBaseURL string
	logger        *zap.Logger
}

// NewAnimalHandler constructs the animal HTTP adapter.
func NewAnimalHandler(svc *herd.Service, qrClient qrimage.Client, publicBaseURL string, logger *zap.Logger) *AnimalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnimalHandler{svc: svc, qrClient: qrClient, publicBaseURL: publicBaseURL, logger: logger}
}

type animalRequest struct {
	FarmID         string                 `json:"farm_id" binding:"required"`
	TagNumber      string                 `json:"tag_number" binding:"required"`
	OfficialEarTag string                 `json:"official_ear_tag"`
	Name           string                 `json:"name"`
	Sex            models.Sex             `json:"sex"`
	Breed          string                 `json:"breed"`
	BirthDate      string                 `json:"birth_date"`
	WeightKg       *float64               `json:"weight_kg"`
	Category       models.Category        `json:"category" binding:"required"`
	Lifecycle      models.LifecycleStatus `json:"lifecycle"`
	SaleStatus     models.SaleStatus      `json:"sale_status"`
	Price          *float64               `json:"price"`
	PhotoURL       string                 `json:"photo_url"`
	ContactName    string                 `json:"contact_name"`
	ContactPhone   string                 `json:"contact_phone"`
	SireID         string                 `json:"sire_id"`
	DamID          string                 `json:"dam_id"`
}

func (r animalRequest) toInput() herd.AnimalInput {
	return herd.AnimalInput{
		FarmID:         r.FarmID,
		TagNumber:      r.TagNumber,
		OfficialEarTag: r.OfficialEarTag,
		Name:           r.Name,
		Sex:            r.Sex,
		Breed:          r.Breed,
		BirthDate:      r.BirthDate,
		WeightKg:       r.WeightKg,
		Category:       r.Category,
		Lifecycle:      r.Lifecycle,
		SaleStatus:     r.SaleStatus,
		Price:          r.Price,
		PhotoURL:       r.PhotoURL,
		ContactName:    r.ContactName,
		ContactPhone:   r.ContactPhone,
		SireID:         r.SireID,
		DamID:          r.DamID,
	}
}

// Register creates a new animal and fires its onboarding checklist.
func (h *AnimalHandler) Register(c *gin.Context) {
	var req animalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid animal payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	animal, err := h.svc.RegisterAnimal(c.Request.Context(), middleware.PrincipalID(c), req.toInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, animal)
}

// Get fetches one animal.
func (h *AnimalHandler) Get(c *gin.Context) {
	animal, err := h.svc.GetAnimal(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, animal)
}

// List returns animals, optionally filtered by farm.
func (h *AnimalHandler) List(c *gin.Context) {
	animals, err := h.svc.ListAnimals(c.Request.Context(), c.Query("farm_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, animals)
}

// Update applies changes to one animal.
func (h *AnimalHandler) Update(c *gin.Context) {
	var req animalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	animal, err := h.svc.UpdateAnimal(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, animal)
}

// Delete removes one animal and its dependent records.
func (h *AnimalHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteAnimal(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "animal deleted"})
}

// QRImage returns a printable PNG encoding the animal's public lookup URL.
func (h *AnimalHandler) QRImage(c *gin.Context) {
	animal, err := h.svc.GetAnimal(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	payload := fmt.Sprintf("%s/qr/%s", h.publicBaseURL, animal.PublicToken)
	png, err := h.qrClient.Render(c.Request.Context(), payload, 300)
	if err != nil {
		h.logger.Error("qr rendering failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "qr rendering unavailable"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
