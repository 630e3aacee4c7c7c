package validation

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/program-store-api/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// maxCommentLength caps comment bodies; the CMS renders them unpaginated.
const maxCommentLength = 4000

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidateCheckout validates a checkout request
func ValidateCheckout(req *models.CheckoutRequest) []ValidationError {
	var errors []ValidationError

	email := strings.TrimSpace(req.BuyerEmail)
	if email == "" {
		errors = append(errors, ValidationError{Field: "buyer_email", Message: "buyer_email is required"})
	} else if !emailRegex.MatchString(email) {
		errors = append(errors, ValidationError{Field: "buyer_email", Message: "invalid email format", Value: req.BuyerEmail})
	}

	if req.ProgramID == "" {
		errors = append(errors, ValidationError{Field: "program_id", Message: "program_id is required"})
	} else if !isValidUUID(req.ProgramID) {
		errors = append(errors, ValidationError{Field: "program_id", Message: "invalid UUID format", Value: req.ProgramID})
	}

	return errors
}

// ValidateComment validates a comment request
func ValidateComment(req *models.CommentRequest) []ValidationError {
	var errors []ValidationError

	content := strings.TrimSpace(req.Content)
	if content == "" {
		errors = append(errors, ValidationError{Field: "content", Message: "content is required"})
	} else if len(content) > maxCommentLength {
		errors = append(errors, ValidationError{Field: "content", Message: "content too long"})
	}

	if req.ProgramID == "" && req.ArticleID == "" {
		errors = append(errors, ValidationError{Field: "program_id", Message: "program_id or article_id is required"})
	}
	if req.ProgramID != "" && !isValidUUID(req.ProgramID) {
		errors = append(errors, ValidationError{Field: "program_id", Message: "invalid UUID format", Value: req.ProgramID})
	}
	if req.ArticleID != "" && !isValidUUID(req.ArticleID) {
		errors = append(errors, ValidationError{Field: "article_id", Message: "invalid UUID format", Value: req.ArticleID})
	}

	return errors
}

// isValidUUID checks if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
