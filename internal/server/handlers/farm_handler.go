package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/manea/internal/domain/models"
	"github.com/mamadbah2/manea/internal/service/herd"
)

// FarmHandler handles farm and pasture endpoints.
type FarmHandler struct {
	svc    *herd.Service
	logger *zap.Logger
}

// NewFarmHandler constructs the farm HTTP adapter.
func NewFarmHandler(svc *herd.Service, logger *zap.Logger) *FarmHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FarmHandler{svc: svc, logger: logger}
}

type farmRequest struct {
	Name         string            `json:"name" binding:"required"`
	CountryCode  string            `json:"country_code"`
	Location     *models.GeoPoint  `json:"location"`
	Boundary     []models.GeoPoint `json:"boundary"`
	AreaHa       *float64          `json:"area_ha"`
	ContactName  string            `json:"contact_name"`
	ContactPhone string            `json:"contact_phone"`
}

func (r farmRequest) toInput() herd.FarmInput {
	return herd.FarmInput{
		Name:         r.Name,
		CountryCode:  r.CountryCode,
		Location:     r.Location,
		Boundary:     r.Boundary,
		AreaHa:       r.AreaHa,
		ContactName:  r.ContactName,
		ContactPhone: r.ContactPhone,
	}
}

// Create registers a new farm.
func (h *FarmHandler) Create(c *gin.Context) {
	var req farmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	farm, err := h.svc.CreateFarm(c.Request.Context(), req.toInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, farm)
}

// Get fetches one farm.
func (h *FarmHandler) Get(c *gin.Context) {
	farm, err := h.svc.GetFarm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, farm)
}

// List returns all farms.
func (h *FarmHandler) List(c *gin.Context) {
	farms, err := h.svc.ListFarms(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, farms)
}

// Update applies changes to one farm.
func (h *FarmHandler) Update(c *gin.Context) {
	var req farmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	farm, err := h.svc.UpdateFarm(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, farm)
}

// Delete removes one farm.
func (h *FarmHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteFarm(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "farm deleted"})
}

type pastureRequest struct {
	FarmID  string            `json:"farm_id" binding:"required"`
	Name    string            `json:"name" binding:"required"`
	AreaHa  *float64          `json:"area_ha"`
	Polygon []models.GeoPoint `json:"polygon" binding:"required"`
}

// CreatePasture registers a new pasture within a farm.
func (h *FarmHandler) CreatePasture(c *gin.Context) {
	var req pastureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	pasture, err := h.svc.CreatePasture(c.Request.Context(), herd.PastureInput{
		FarmID:  req.FarmID,
		Name:    req.Name,
		AreaHa:  req.AreaHa,
		Polygon: req.Polygon,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, pasture)
}

// ListPastures returns pastures, optionally filtered by farm.
func (h *FarmHandler) ListPastures(c *gin.Context) {
	pastures, err := h.svc.ListPastures(c.Request.Context(), c.Query("farm_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pastures)
}
