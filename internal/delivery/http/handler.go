package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storelens/resolver/internal/domain"
	"github.com/storelens/resolver/internal/usecase"
)

// batchLimit caps one batch request; upstream sources are slow and
// rate-limited, so oversized batches belong in the CLI runner.
const batchLimit = 100

// Handler holds dependencies for HTTP handlers
type Handler struct {
	resolver *usecase.ResolverService
}

// NewHandler creates a new HTTP handler
func NewHandler(resolver *usecase.ResolverService) *Handler {
	return &Handler{resolver: resolver}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "storelens-resolver",
		"version": "1.0.0",
	})
}

// ResolveProduct resolves one product URL into a canonical record.
// Resolution never fails as such; unusable URLs come back with a
// bad-url or empty status and a blank record.
func (h *Handler) ResolveProduct(c *gin.Context) {
	var req domain.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	outcome := h.resolver.Resolve(c.Request.Context(), req.URL)
	c.JSON(http.StatusOK, outcome)
}

// ResolveBatch resolves several URLs and reports which of them failed.
func (h *Handler) ResolveBatch(c *gin.Context) {
	var req domain.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.URLs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "urls list is required"})
		return
	}
	if len(req.URLs) > batchLimit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many urls in one batch"})
		return
	}

	outcomes := h.resolver.ResolveBatch(c.Request.Context(), req.URLs)
	c.JSON(http.StatusOK, gin.H{
		"outcomes": outcomes,
		"failed":   usecase.FailedURLs(outcomes),
	})
}
