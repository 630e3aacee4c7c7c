package validation

import (
	"strings"
	"testing"

	"github.com/program-store-api/internal/models"
)

func TestValidateCheckout(t *testing.T) {
	tests := []struct {
		name       string
		req        *models.CheckoutRequest
		wantErrors int
		wantFields []string
	}{
		{
			name: "valid request",
			req: &models.CheckoutRequest{
				BuyerEmail: "buyer@example.com",
				ProgramID:  "550e8400-e29b-41d4-a716-446655440000",
			},
			wantErrors: 0,
		},
		{
			name: "missing buyer email",
			req: &models.CheckoutRequest{
				ProgramID: "550e8400-e29b-41d4-a716-446655440000",
			},
			wantErrors: 1,
			wantFields: []string{"buyer_email"},
		},
		{
			name: "invalid email format",
			req: &models.CheckoutRequest{
				BuyerEmail: "not-an-email",
				ProgramID:  "550e8400-e29b-41d4-a716-446655440000",
			},
			wantErrors: 1,
			wantFields: []string{"buyer_email"},
		},
		{
			name: "whitespace-only email",
			req: &models.CheckoutRequest{
				BuyerEmail: "   ",
				ProgramID:  "550e8400-e29b-41d4-a716-446655440000",
			},
			wantErrors: 1,
			wantFields: []string{"buyer_email"},
		},
		{
			name: "missing program id",
			req: &models.CheckoutRequest{
				BuyerEmail: "buyer@example.com",
			},
			wantErrors: 1,
			wantFields: []string{"program_id"},
		},
		{
			name: "program id not a uuid",
			req: &models.CheckoutRequest{
				BuyerEmail: "buyer@example.com",
				ProgramID:  "strength-program",
			},
			wantErrors: 1,
			wantFields: []string{"program_id"},
		},
		{
			name:       "everything missing",
			req:        &models.CheckoutRequest{},
			wantErrors: 2,
			wantFields: []string{"buyer_email", "program_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := ValidateCheckout(tt.req)
			if len(errors) != tt.wantErrors {
				t.Errorf("Expected %d errors, got %d: %v", tt.wantErrors, len(errors), errors)
			}
			for _, field := range tt.wantFields {
				found := false
				for _, e := range errors {
					if e.Field == field {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("Expected error on field '%s', got: %v", field, errors)
				}
			}
		})
	}
}

func TestValidateComment(t *testing.T) {
	tests := []struct {
		name       string
		req        *models.CommentRequest
		wantErrors int
		wantFields []string
	}{
		{
			name: "valid program comment",
			req: &models.CommentRequest{
				Content:   "Solid programming, the deload weeks made a difference.",
				ProgramID: "550e8400-e29b-41d4-a716-446655440000",
			},
			wantErrors: 0,
		},
		{
			name: "valid article comment",
			req: &models.CommentRequest{
				Content:   "Great write-up.",
				ArticleID: "550e8400-e29b-41d4-a716-446655440001",
			},
			wantErrors: 0,
		},
		{
			name: "empty content",
			req: &models.CommentRequest{
				ProgramID: "550e8400-e29b-41d4-a716-446655440000",
			},
			wantErrors: 1,
			wantFields: []string{"content"},
		},
		{
			name: "whitespace-only content",
			req: &models.CommentRequest{
				Content:   "  \n\t ",
				ProgramID: "550e8400-e29b-41d4-a716-446655440000",
			},
			wantErrors: 1,
			wantFields: []string{"content"},
		},
		{
			name: "content too long",
			req: &models.CommentRequest{
				Content:   strings.Repeat("a", maxCommentLength+1),
				ProgramID: "550e8400-e29b-41d4-a716-446655440000",
			},
			wantErrors: 1,
			wantFields: []string{"content"},
		},
		{
			name: "content exactly at limit",
			req: &models.CommentRequest{
				Content:   strings.Repeat("a", maxCommentLength),
				ProgramID: "550e8400-e29b-41d4-a716-446655440000",
			},
			wantErrors: 0,
		},
		{
			name: "no target at all",
			req: &models.CommentRequest{
				Content: "hello",
			},
			wantErrors: 1,
			wantFields: []string{"program_id"},
		},
		{
			name: "program id not a uuid",
			req: &models.CommentRequest{
				Content:   "hello",
				ProgramID: "nope",
			},
			wantErrors: 1,
			wantFields: []string{"program_id"},
		},
		{
			name: "article id not a uuid",
			req: &models.CommentRequest{
				Content:   "hello",
				ArticleID: "nope",
			},
			wantErrors: 1,
			wantFields: []string{"article_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := ValidateComment(tt.req)
			if len(errors) != tt.wantErrors {
				t.Errorf("Expected %d errors, got %d: %v", tt.wantErrors, len(errors), errors)
			}
			for _, field := range tt.wantFields {
				found := false
				for _, e := range errors {
					if e.Field == field {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("Expected error on field '%s', got: %v", field, errors)
				}
			}
		})
	}
}
