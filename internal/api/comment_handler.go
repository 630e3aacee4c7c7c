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

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// CreateComment handles POST /v1/comments
// Requires an authenticated identity; a caller without a completed purchase
// gets a 403 with a message distinct from the 401 for missing identity.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	ctx := c.Request.Context()

	identity := identityFromContext(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if validationErrors := validation.ValidateComment(&req); len(validationErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"errors": validationErrors,
		})
		return
	}

	comment, err := h.services.Comment.Create(ctx, identity, &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "a completed purchase is required to comment"})
		case errors.Is(err, models.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		default:
			h.log.Error().Err(err).Str("user_id", identity.UserID).Msg("Failed to create comment")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create comment"})
		}
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListComments handles GET /v1/programs/:id/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	comments, err := h.services.Comment.ListByProgram(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list comments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list comments"})
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
