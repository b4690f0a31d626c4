package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/manea/internal/domain/models"
	"github.com/mamadbah2/manea/internal/repository/memory"
	"github.com/mamadbah2/manea/internal/service/herd"
)

func newPublicRouter(t *testing.T) (*gin.Engine, *herd.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := herd.NewService(
		memory.NewFarmRepo(), memory.NewPastureRepo(), memory.NewAnimalRepo(),
		memory.NewMedicalRepo(), memory.NewMilkRepo(), memory.NewWeightRepo(),
		memory.NewAlertRepo(), nil, nil)

	router := gin.New()
	router.GET("/api/public/qr/:token", NewPublicHandler(svc, nil).Summary)
	return router, svc
}

// TestPublicSummaryEndpoint serves the animal summary for a valid token.
func TestPublicSummaryEndpoint(t *testing.T) {
	router, svc := newPublicRouter(t)
	ctx := context.Background()

	farm, err := svc.CreateFarm(ctx, herd.FarmInput{Name: "La Esperanza"})
	require.NoError(t, err)
	animal, err := svc.RegisterAnimal(ctx, "user-1", herd.AnimalInput{
		FarmID:    farm.ID,
		TagNumber: "V-001",
		Category:  models.CategoryDairy,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/public/qr/"+animal.PublicToken, nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary models.PublicAnimalSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, animal.ID, summary.Animal.ID)
	assert.Equal(t, farm.ID, summary.Farm.ID)
}

// TestPublicSummaryEndpoint_UnknownToken returns 404 for stale tokens.
func TestPublicSummaryEndpoint_UnknownToken(t *testing.T) {
	router, _ := newPublicRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/public/qr/not-a-token", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
