package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/program-store-api/internal/api"
	"github.com/program-store-api/internal/config"
	"github.com/program-store-api/internal/mocks"
	"github.com/program-store-api/internal/models"
	"github.com/program-store-api/internal/service"
)

const testJWTSecret = "test-secret"

type routerMocks struct {
	checkout *mocks.MockCheckoutService
	purchase *mocks.MockPurchaseService
	download *mocks.MockDownloadService
	comment  *mocks.MockCommentService
	notifier *mocks.MockNotifierService
	program  *mocks.MockProgramService
}

func setupTestRouter() (*gin.Engine, *routerMocks) {
	gin.SetMode(gin.TestMode)

	m := &routerMocks{
		checkout: mocks.NewMockCheckoutService(),
		purchase: mocks.NewMockPurchaseService(),
		download: mocks.NewMockDownloadService(),
		comment:  mocks.NewMockCommentService(),
		notifier: mocks.NewMockNotifierService(),
		program:  mocks.NewMockProgramService(),
	}

	services := &service.Services{
		Checkout:    m.checkout,
		Purchase:    m.purchase,
		Download:    m.download,
		Entitlement: mocks.NewMockEntitlementService(),
		Comment:     m.comment,
		Notifier:    m.notifier,
		Program:     m.program,
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080", BaseURL: "http://localhost:8080"},
		Auth:   config.AuthConfig{JWTSecret: testJWTSecret},
	}

	log := zerolog.Nop()
	router := api.NewRouter(services, cfg, log)

	return router, m
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "program-store-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, m := setupTestRouter()
	m.program.Counts["programs"] = 12
	m.program.Counts["purchases"] = 340
	m.program.Counts["comments"] = 95

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	db := response["database"].(map[string]interface{})
	if db["purchases"].(float64) != 340 {
		t.Errorf("Expected 340 purchases, got %v", db["purchases"])
	}
}

func TestCreateCheckout(t *testing.T) {
	router, m := setupTestRouter()
	m.checkout.SessionURL = "https://checkout.example.com/pay/abc"

	body := `{"buyer_email":"buyer@test.com","program_id":"550e8400-e29b-41d4-a716-446655440000"}`
	req := httptest.NewRequest("POST", "/v1/checkout", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["url"] != "https://checkout.example.com/pay/abc" {
		t.Errorf("Expected redirect URL, got %v", response["url"])
	}
}

func TestCreateCheckout_Validation(t *testing.T) {
	router, _ := setupTestRouter()

	tests := []struct {
		name          string
		body          string
		expectedError string
	}{
		{
			name:          "missing buyer email",
			body:          `{"program_id":"550e8400-e29b-41d4-a716-446655440000"}`,
			expectedError: "buyer_email is required",
		},
		{
			name:          "invalid email",
			body:          `{"buyer_email":"not-an-email","program_id":"550e8400-e29b-41d4-a716-446655440000"}`,
			expectedError: "invalid email format",
		},
		{
			name:          "missing program id",
			body:          `{"buyer_email":"buyer@test.com"}`,
			expectedError: "program_id is required",
		},
		{
			name:          "non-uuid program id",
			body:          `{"buyer_email":"buyer@test.com","program_id":"abc"}`,
			expectedError: "invalid UUID format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/v1/checkout", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d. Body: %s", w.Code, w.Body.String())
			}
			if !bytes.Contains(w.Body.Bytes(), []byte(tt.expectedError)) {
				t.Errorf("Expected error '%s' in response, got: %s", tt.expectedError, w.Body.String())
			}
		})
	}
}

func TestCreateCheckout_ProgramNotFound(t *testing.T) {
	router, m := setupTestRouter()
	m.checkout.CreateError = fmt.Errorf("%w: program", models.ErrNotFound)

	body := `{"buyer_email":"buyer@test.com","program_id":"550e8400-e29b-41d4-a716-446655440000"}`
	req := httptest.NewRequest("POST", "/v1/checkout", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestCreateCheckout_UpstreamFailure(t *testing.T) {
	router, m := setupTestRouter()
	m.checkout.CreateError = fmt.Errorf("%w: processor unavailable", models.ErrUpstreamFailure)

	body := `{"buyer_email":"buyer@test.com","program_id":"550e8400-e29b-41d4-a716-446655440000"}`
	req := httptest.NewRequest("POST", "/v1/checkout", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", w.Code)
	}
}

func TestCompleteCheckout(t *testing.T) {
	router, m := setupTestRouter()
	expiresAt := time.Now().Add(72 * time.Hour)
	m.checkout.Result = &models.ReconcileResult{
		Purchase: &models.Purchase{
			ID:            "purchase-1",
			Status:        models.PurchaseStatusCompleted,
			DownloadLimit: 3,
			ExpiresAt:     &expiresAt,
		},
		Program: &models.Program{ID: "prog-1", Name: "12 Week Strength Program"},
	}

	req := httptest.NewRequest("GET", "/v1/checkout/complete?session_id=cs_test_1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	purchase := response["purchase"].(map[string]interface{})
	if purchase["status"] != "completed" {
		t.Errorf("Expected status completed, got %v", purchase["status"])
	}
	program := response["program"].(map[string]interface{})
	if program["name"] != "12 Week Strength Program" {
		t.Errorf("Expected program name, got %v", program["name"])
	}
}

func TestCompleteCheckout_MissingSessionID(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/v1/checkout/complete", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestCompleteCheckout_UnknownSession(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/v1/checkout/complete?session_id=cs_unknown", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestDownload(t *testing.T) {
	router, m := setupTestRouter()
	content := []byte("%PDF-artifact")
	m.download.Result = &service.DownloadResult{
		Filename:    "strength.pdf",
		ContentType: "application/pdf",
		Size:        int64(len(content)),
		Body:        io.NopCloser(bytes.NewReader(content)),
		Purchase:    &models.Purchase{ID: "purchase-1"},
	}

	req := httptest.NewRequest("GET", "/download/token-abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	if w.Header().Get("Content-Type") != "application/pdf" {
		t.Errorf("Expected application/pdf, got %s", w.Header().Get("Content-Type"))
	}
	disposition := w.Header().Get("Content-Disposition")
	if disposition != `attachment; filename="strength.pdf"` {
		t.Errorf("Unexpected Content-Disposition: %s", disposition)
	}
	if !bytes.Equal(w.Body.Bytes(), content) {
		t.Errorf("Expected artifact bytes, got %q", w.Body.Bytes())
	}
	if len(m.download.Calls) != 1 || m.download.Calls[0] != "token-abc" {
		t.Errorf("Expected download called with token-abc, got %v", m.download.Calls)
	}
}

func TestDownload_Failures(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"limit exceeded", fmt.Errorf("%w: 3 of 3 downloads used", models.ErrLimitExceeded), http.StatusForbidden},
		{"expired token", fmt.Errorf("%w: expired", models.ErrTokenExpired), http.StatusNotFound},
		{"unknown token", fmt.Errorf("%w: download token", models.ErrNotFound), http.StatusNotFound},
		{"storage failure", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := setupTestRouter()
			m.download.DownloadError = tt.err

			req := httptest.NewRequest("GET", "/download/token-abc", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestCreateComment(t *testing.T) {
	router, m := setupTestRouter()

	token := signToken(t, jwt.MapClaims{"sub": "user-1", "email": "buyer@test.com", "role": "viewer"})
	body := `{"content":"Great program","program_id":"550e8400-e29b-41d4-a716-446655440000"}`
	req := httptest.NewRequest("POST", "/v1/comments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}
	if len(m.comment.Created) != 1 {
		t.Fatalf("Expected 1 comment created, got %d", len(m.comment.Created))
	}
	if m.comment.Created[0].UserID != "user-1" {
		t.Errorf("Expected comment attributed to user-1, got %s", m.comment.Created[0].UserID)
	}
}

func TestCreateComment_AuthRequired(t *testing.T) {
	router, _ := setupTestRouter()

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"malformed header", "Token abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"content":"hi","program_id":"550e8400-e29b-41d4-a716-446655440000"}`
			req := httptest.NewRequest("POST", "/v1/comments", bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected status 401, got %d", w.Code)
			}
		})
	}
}

func TestCreateComment_NotEntitled(t *testing.T) {
	router, m := setupTestRouter()
	m.comment.CreateError = fmt.Errorf("%w: commenting requires a completed purchase", models.ErrForbidden)

	token := signToken(t, jwt.MapClaims{"sub": "user-9", "email": "stranger@test.com", "role": "viewer"})
	body := `{"content":"hi","program_id":"550e8400-e29b-41d4-a716-446655440000"}`
	req := httptest.NewRequest("POST", "/v1/comments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d. Body: %s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("completed purchase")) {
		t.Errorf("Expected entitlement message, got: %s", w.Body.String())
	}
}

func TestCreateComment_Validation(t *testing.T) {
	router, _ := setupTestRouter()
	token := signToken(t, jwt.MapClaims{"sub": "user-1", "email": "buyer@test.com", "role": "viewer"})

	tests := []struct {
		name          string
		body          string
		expectedError string
	}{
		{"empty content", `{"content":"","program_id":"550e8400-e29b-41d4-a716-446655440000"}`, "content is required"},
		{"no target", `{"content":"hi"}`, "program_id or article_id is required"},
		{"bad program id", `{"content":"hi","program_id":"nope"}`, "invalid UUID format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/v1/comments", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d. Body: %s", w.Code, w.Body.String())
			}
			if !bytes.Contains(w.Body.Bytes(), []byte(tt.expectedError)) {
				t.Errorf("Expected error '%s' in response, got: %s", tt.expectedError, w.Body.String())
			}
		})
	}
}

func TestListProgramComments(t *testing.T) {
	router, m := setupTestRouter()
	m.comment.Created = []*models.Comment{
		{ID: "comment-1", ProgramID: "prog-1", Content: "Loved it"},
		{ID: "comment-2", ProgramID: "prog-2", Content: "Other program"},
	}

	req := httptest.NewRequest("GET", "/v1/programs/prog-1/comments", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	comments := response["comments"].([]interface{})
	if len(comments) != 1 {
		t.Errorf("Expected 1 comment for prog-1, got %d", len(comments))
	}
}

func TestAdminEndpoints_RequireAdminRole(t *testing.T) {
	router, _ := setupTestRouter()

	// No token at all.
	req := httptest.NewRequest("GET", "/v1/admin/purchases", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without token, got %d", w.Code)
	}

	// Authenticated but not an administrator.
	token := signToken(t, jwt.MapClaims{"sub": "user-1", "email": "buyer@test.com", "role": "viewer"})
	req = httptest.NewRequest("GET", "/v1/admin/purchases", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for non-admin, got %d", w.Code)
	}
}

func adminToken(t *testing.T) string {
	return signToken(t, jwt.MapClaims{"sub": "admin-1", "email": "admin@test.com", "role": "admin"})
}

func TestAdminListPurchases(t *testing.T) {
	router, m := setupTestRouter()
	m.purchase.Purchases["purchase-1"] = &models.Purchase{
		ID:     "purchase-1",
		Status: models.PurchaseStatusCompleted,
	}
	m.purchase.Purchases["purchase-2"] = &models.Purchase{
		ID:     "purchase-2",
		Status: models.PurchaseStatusPending,
	}

	req := httptest.NewRequest("GET", "/v1/admin/purchases?status=completed", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["count"].(float64) != 1 {
		t.Errorf("Expected 1 filtered purchase, got %v", response["count"])
	}
}

func TestAdminResend(t *testing.T) {
	router, m := setupTestRouter()

	req := httptest.NewRequest("POST", "/v1/admin/purchases/purchase-1/resend", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	if len(m.notifier.Resends) != 1 || m.notifier.Resends[0] != "purchase-1" {
		t.Errorf("Expected resend for purchase-1, got %v", m.notifier.Resends)
	}
}

func TestAdminResend_Failures(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"unknown purchase", fmt.Errorf("%w: purchase", models.ErrNotFound), http.StatusNotFound},
		{"not completed", fmt.Errorf("%w: no token", models.ErrInvalidTransition), http.StatusConflict},
		{"smtp failure", errors.New("connection refused"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := setupTestRouter()
			m.notifier.ResendError = tt.err

			req := httptest.NewRequest("POST", "/v1/admin/purchases/purchase-1/resend", nil)
			req.Header.Set("Authorization", "Bearer "+adminToken(t))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAdminResetDownloads(t *testing.T) {
	router, m := setupTestRouter()
	m.purchase.Purchases["purchase-1"] = &models.Purchase{
		ID:            "purchase-1",
		Status:        models.PurchaseStatusCompleted,
		DownloadCount: 3,
		DownloadLimit: 3,
	}

	req := httptest.NewRequest("POST", "/v1/admin/purchases/purchase-1/reset-downloads", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	if m.purchase.Purchases["purchase-1"].DownloadCount != 0 {
		t.Errorf("Expected download count reset to 0, got %d", m.purchase.Purchases["purchase-1"].DownloadCount)
	}
}

func TestAdminResetDownloads_NotFound(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("POST", "/v1/admin/purchases/nope/reset-downloads", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestAdminRefund(t *testing.T) {
	router, m := setupTestRouter()
	m.purchase.Purchases["purchase-1"] = &models.Purchase{
		ID:     "purchase-1",
		Status: models.PurchaseStatusCompleted,
	}
	m.purchase.Purchases["purchase-2"] = &models.Purchase{
		ID:     "purchase-2",
		Status: models.PurchaseStatusPending,
	}

	req := httptest.NewRequest("POST", "/v1/admin/purchases/purchase-1/refund", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	if m.purchase.Purchases["purchase-1"].Status != models.PurchaseStatusRefunded {
		t.Errorf("Expected status refunded, got %s", m.purchase.Purchases["purchase-1"].Status)
	}

	// A pending purchase cannot be refunded.
	req = httptest.NewRequest("POST", "/v1/admin/purchases/purchase-2/refund", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d. Body: %s", w.Code, w.Body.String())
	}
}

func TestListPrograms(t *testing.T) {
	router, m := setupTestRouter()
	m.program.Programs["prog-1"] = &models.Program{ID: "prog-1", Name: "Strength", Published: true}
	m.program.Programs["prog-2"] = &models.Program{ID: "prog-2", Name: "Draft", Published: false}

	req := httptest.NewRequest("GET", "/v1/programs", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	programs := response["programs"].([]interface{})
	if len(programs) != 1 {
		t.Errorf("Expected 1 published program, got %d", len(programs))
	}
}

func TestGetProgram_NotFound(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/v1/programs/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestCORSHeaders(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("OPTIONS", "/v1/checkout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204 for OPTIONS, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Expected Access-Control-Allow-Origin '*', got '%s'", w.Header().Get("Access-Control-Allow-Origin"))
	}
}
