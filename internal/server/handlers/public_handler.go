package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/manea/internal/service/herd"
)

// PublicHandler serves the unauthenticated QR lookup. It is the only
// surface exposed without a principal.
type PublicHandler struct {
	svc    *herd.Service
	logger *zap.Logger
}

// NewPublicHandler constructs the public HTTP adapter.
func NewPublicHandler(svc *herd.Service, logger *zap.Logger) *PublicHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicHandler{svc: svc, logger: logger}
}

// Summary resolves a public lookup token into the read-only animal summary.
func (h *PublicHandler) Summary(c *gin.Context) {
	summary, err := h.svc.PublicSummary(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
