package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/program-store-api/internal/models"
	"github.com/program-store-api/internal/service"
)

// DownloadHandler handles the token-gated download endpoint
type DownloadHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewDownloadHandler creates a new DownloadHandler
func NewDownloadHandler(services *service.Services, log zerolog.Logger) *DownloadHandler {
	return &DownloadHandler{
		services: services,
		log:      log.With().Str("handler", "download").Logger(),
	}
}

// Download handles GET /download/:token
// Failure mapping: 400 missing token, 403 limit exceeded, 404 unknown or
// expired token, 500 when neither the artifact nor a substitute could be
// produced. Rejected requests consume no download quota.
func (h *DownloadHandler) Download(c *gin.Context) {
	ctx := c.Request.Context()

	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "download token is required"})
		return
	}

	result, err := h.services.Download.HandleDownload(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrLimitExceeded):
			c.JSON(http.StatusForbidden, gin.H{"error": "download limit exceeded"})
		case errors.Is(err, models.ErrTokenExpired), errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "download not found or expired"})
		default:
			h.log.Error().Err(err).Msg("Download delivery failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deliver download"})
		}
		return
	}
	defer result.Body.Close()

	h.log.Info().
		Str("purchase_id", result.Purchase.ID).
		Str("filename", result.Filename).
		Bool("generated", result.Generated).
		Msg("Streaming download")

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, result.Filename),
	}
	c.DataFromReader(http.StatusOK, result.Size, result.ContentType, result.Body, extraHeaders)
}
