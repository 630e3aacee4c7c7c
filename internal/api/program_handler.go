package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/program-store-api/internal/models"
	"github.com/program-store-api/internal/service"
)

// ProgramHandler handles the read-only program catalog
type ProgramHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewProgramHandler creates a new ProgramHandler
func NewProgramHandler(services *service.Services, log zerolog.Logger) *ProgramHandler {
	return &ProgramHandler{
		services: services,
		log:      log.With().Str("handler", "program").Logger(),
	}
}

// ListPrograms handles GET /v1/programs
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	programs, err := h.services.Program.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list programs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list programs"})
		return
	}
	if programs == nil {
		programs = []*models.Program{}
	}
	c.JSON(http.StatusOK, gin.H{"programs": programs})
}

// GetProgram handles GET /v1/programs/:id
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	program, err := h.services.Program.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "program not found"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to get program")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get program"})
		return
	}
	c.JSON(http.StatusOK, program)
}
