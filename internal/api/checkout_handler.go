package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/program-store-api/internal/models"
	"github.com/program-store-api/internal/service"
	"github.com/program-store-api/internal/validation"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(services *service.Services, log zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		services: services,
		log:      log.With().Str("handler", "checkout").Logger(),
	}
}

// CreateCheckout handles POST /v1/checkout
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if validationErrors := validation.ValidateCheckout(&req); len(validationErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"errors": validationErrors,
		})
		return
	}

	url, err := h.services.Checkout.CreateCheckoutSession(ctx, req.BuyerEmail, req.ProgramID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "program not found"})
			return
		}
		h.log.Error().Err(err).Str("program_id", req.ProgramID).Msg("Failed to create checkout session")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create checkout session"})
		return
	}

	h.log.Info().
		Str("program_id", req.ProgramID).
		Str("buyer_email", req.BuyerEmail).
		Msg("Checkout session created")

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// CompleteCheckout handles GET /v1/checkout/complete?session_id=...
// The thank-you return path; reconciliation is idempotent so repeated visits
// are harmless.
func (h *CheckoutHandler) CompleteCheckout(c *gin.Context) {
	ctx := c.Request.Context()

	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	result, err := h.services.Checkout.ReconcileSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		h.log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to reconcile session")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to verify payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"purchase": gin.H{
			"id":             result.Purchase.ID,
			"status":         result.Purchase.Status,
			"download_limit": result.Purchase.DownloadLimit,
			"expires_at":     result.Purchase.ExpiresAt,
		},
		"program": gin.H{
			"id":   result.Program.ID,
			"name": result.Program.Name,
		},
	})
}
