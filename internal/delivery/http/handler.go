package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/optionmap/backend/internal/delivery/reply"
	"github.com/optionmap/backend/internal/domain"
	"github.com/optionmap/backend/internal/infrastructure/logging"
	"go.uber.org/zap"
)

// Transformer rewrites the option values of a raw product batch
type Transformer interface {
	Transform(ctx context.Context, body []byte) (*domain.Batch, *domain.TransformReport, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	transformer Transformer
	logger      *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(transformer Transformer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		transformer: transformer,
		logger:      logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "optionmap-backend",
		"version": "1.0.0",
	})
}

// TransformOptions maps the vendor option values of the posted batch and echoes the
// batch back
func (h *Handler) TransformOptions(c *gin.Context) {
	if h.transformer == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Option mapping service not configured",
		})
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		h.fail(c, fmt.Errorf("%w: %v", domain.ErrMalformedBody, err))
		return
	}

	batch, _, err := h.transformer.Transform(c.Request.Context(), body)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, batch)
}

func (h *Handler) fail(c *gin.Context, err error) {
	reply.LogFailure(logging.FromContext(c.Request.Context(), h.logger), err)
	c.JSON(reply.Status(err), reply.ErrorBody(err))
}
