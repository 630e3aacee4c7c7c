package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/program-store-api/internal/models"
	"github.com/program-store-api/internal/service"
)

// AdminHandler handles administrator-only purchase operations
type AdminHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// ListPurchases handles GET /v1/admin/purchases
func (h *AdminHandler) ListPurchases(c *gin.Context) {
	ctx := c.Request.Context()

	filter := &models.PurchaseFilter{
		BuyerEmail: c.Query("buyer_email"),
	}
	if status := c.Query("status"); status != "" {
		filter.Status = models.PurchaseStatus(status)
	}
	if limit := c.Query("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			filter.Limit = n
		}
	}
	if offset := c.Query("offset"); offset != "" {
		if n, err := strconv.Atoi(offset); err == nil {
			filter.Offset = n
		}
	}

	purchases, err := h.services.Purchase.ListPurchases(ctx, filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list purchases")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list purchases"})
		return
	}
	if purchases == nil {
		purchases = []*models.Purchase{}
	}

	c.JSON(http.StatusOK, gin.H{
		"purchases": purchases,
		"count":     len(purchases),
	})
}

// ResendNotification handles POST /v1/admin/purchases/:id/resend
// Regenerates and re-sends the fulfillment email without mutating the
// download counter.
func (h *AdminHandler) ResendNotification(c *gin.Context) {
	ctx := c.Request.Context()
	purchaseID := c.Param("id")

	if err := h.services.Notifier.Resend(ctx, purchaseID); err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "purchase not found"})
		case errors.Is(err, models.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "purchase is not completed"})
		default:
			h.log.Error().Err(err).Str("purchase_id", purchaseID).Msg("Failed to resend notification")
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to send email"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification resent"})
}

// ResetDownloads handles POST /v1/admin/purchases/:id/reset-downloads
// Restores the full download quota; does not re-send the email.
func (h *AdminHandler) ResetDownloads(c *gin.Context) {
	ctx := c.Request.Context()
	purchaseID := c.Param("id")

	if err := h.services.Purchase.ResetDownloadCount(ctx, purchaseID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "purchase not found"})
			return
		}
		h.log.Error().Err(err).Str("purchase_id", purchaseID).Msg("Failed to reset download counter")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset download counter"})
		return
	}

	h.log.Info().Str("purchase_id", purchaseID).Msg("Download counter reset")
	c.JSON(http.StatusOK, gin.H{"message": "download counter reset"})
}

// RefundPurchase handles POST /v1/admin/purchases/:id/refund
func (h *AdminHandler) RefundPurchase(c *gin.Context) {
	ctx := c.Request.Context()
	purchaseID := c.Param("id")

	purchase, err := h.services.Purchase.Refund(ctx, purchaseID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "purchase not found"})
		case errors.Is(err, models.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "only completed purchases can be refunded"})
		default:
			h.log.Error().Err(err).Str("purchase_id", purchaseID).Msg("Failed to refund purchase")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to refund purchase"})
		}
		return
	}

	c.JSON(http.StatusOK, purchase)
}
