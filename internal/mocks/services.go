package mocks

import (
	"context"
	"fmt"

	"github.com/program-store-api/internal/models"
	"github.com/program-store-api/internal/service"
)

// MockCheckoutService is a mock implementation of service.CheckoutService
type MockCheckoutService struct {
	SessionURL     string
	CreateError    error
	Result         *models.ReconcileResult
	ReconcileError error
	CreateCalls    int
	ReconcileCalls int
}

func NewMockCheckoutService() *MockCheckoutService {
	return &MockCheckoutService{}
}

func (m *MockCheckoutService) CreateCheckoutSession(ctx context.Context, buyerEmail, programID string) (string, error) {
	m.CreateCalls++
	if m.CreateError != nil {
		return "", m.CreateError
	}
	return m.SessionURL, nil
}

func (m *MockCheckoutService) ReconcileSession(ctx context.Context, sessionID string) (*models.ReconcileResult, error) {
	m.ReconcileCalls++
	if m.ReconcileError != nil {
		return nil, m.ReconcileError
	}
	if m.Result == nil {
		return nil, fmt.Errorf("%w: session %s", models.ErrNotFound, sessionID)
	}
	return m.Result, nil
}

// MockPurchaseService is a mock implementation of service.PurchaseService
type MockPurchaseService struct {
	Purchases   map[string]*models.Purchase
	RedeemError error
	ResetError  error
	RefundError error
	ResetCalls  []string
}

func NewMockPurchaseService() *MockPurchaseService {
	return &MockPurchaseService{
		Purchases: make(map[string]*models.Purchase),
	}
}

func (m *MockPurchaseService) MarkCompleted(ctx context.Context, purchaseID string) (*models.Purchase, error) {
	p, ok := m.Purchases[purchaseID]
	if !ok {
		return nil, fmt.Errorf("%w: purchase %s", models.ErrNotFound, purchaseID)
	}
	p.Status = models.PurchaseStatusCompleted
	return p, nil
}

func (m *MockPurchaseService) MarkFailed(ctx context.Context, purchaseID string) error {
	p, ok := m.Purchases[purchaseID]
	if !ok {
		return fmt.Errorf("%w: purchase %s", models.ErrNotFound, purchaseID)
	}
	p.Status = models.PurchaseStatusFailed
	return nil
}

func (m *MockPurchaseService) RedeemDownload(ctx context.Context, token string) (*models.Purchase, error) {
	if m.RedeemError != nil {
		return nil, m.RedeemError
	}
	for _, p := range m.Purchases {
		if p.DownloadToken == token {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: download token", models.ErrNotFound)
}

func (m *MockPurchaseService) ResetDownloadCount(ctx context.Context, purchaseID string) error {
	if m.ResetError != nil {
		return m.ResetError
	}
	p, ok := m.Purchases[purchaseID]
	if !ok {
		return fmt.Errorf("%w: purchase %s", models.ErrNotFound, purchaseID)
	}
	p.DownloadCount = 0
	m.ResetCalls = append(m.ResetCalls, purchaseID)
	return nil
}

func (m *MockPurchaseService) Refund(ctx context.Context, purchaseID string) (*models.Purchase, error) {
	if m.RefundError != nil {
		return nil, m.RefundError
	}
	p, ok := m.Purchases[purchaseID]
	if !ok {
		return nil, fmt.Errorf("%w: purchase %s", models.ErrNotFound, purchaseID)
	}
	if p.Status != models.PurchaseStatusCompleted {
		return nil, fmt.Errorf("%w: purchase %s", models.ErrInvalidTransition, purchaseID)
	}
	p.Status = models.PurchaseStatusRefunded
	return p, nil
}

func (m *MockPurchaseService) GetPurchase(ctx context.Context, purchaseID string) (*models.Purchase, error) {
	p, ok := m.Purchases[purchaseID]
	if !ok {
		return nil, fmt.Errorf("%w: purchase %s", models.ErrNotFound, purchaseID)
	}
	return p, nil
}

func (m *MockPurchaseService) ListPurchases(ctx context.Context, filter *models.PurchaseFilter) ([]*models.Purchase, error) {
	var purchases []*models.Purchase
	for _, p := range m.Purchases {
		if filter != nil && filter.Status != "" && p.Status != filter.Status {
			continue
		}
		purchases = append(purchases, p)
	}
	return purchases, nil
}

// MockDownloadService is a mock implementation of service.DownloadService
type MockDownloadService struct {
	Result        *service.DownloadResult
	DownloadError error
	Calls         []string
}

func NewMockDownloadService() *MockDownloadService {
	return &MockDownloadService{}
}

func (m *MockDownloadService) HandleDownload(ctx context.Context, token string) (*service.DownloadResult, error) {
	m.Calls = append(m.Calls, token)
	if m.DownloadError != nil {
		return nil, m.DownloadError
	}
	return m.Result, nil
}

// MockEntitlementService is a mock implementation of service.EntitlementService
type MockEntitlementService struct {
	Entitled   bool
	CheckError error
}

func NewMockEntitlementService() *MockEntitlementService {
	return &MockEntitlementService{}
}

func (m *MockEntitlementService) CanComment(ctx context.Context, identity *models.Identity, programID string) (bool, error) {
	if m.CheckError != nil {
		return false, m.CheckError
	}
	return m.Entitled, nil
}

// MockCommentService is a mock implementation of service.CommentService
type MockCommentService struct {
	Created     []*models.Comment
	CreateError error
}

func NewMockCommentService() *MockCommentService {
	return &MockCommentService{}
}

func (m *MockCommentService) Create(ctx context.Context, identity *models.Identity, req *models.CommentRequest) (*models.Comment, error) {
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	comment := &models.Comment{
		ID:        fmt.Sprintf("comment-%d", len(m.Created)+1),
		UserID:    identity.UserID,
		ProgramID: req.ProgramID,
		ArticleID: req.ArticleID,
		Content:   req.Content,
	}
	m.Created = append(m.Created, comment)
	return comment, nil
}

func (m *MockCommentService) ListByProgram(ctx context.Context, programID string) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, c := range m.Created {
		if c.ProgramID == programID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

// MockNotifierService is a mock implementation of service.NotifierService
type MockNotifierService struct {
	Confirmations []string
	Resends       []string
	ResendError   error
}

func NewMockNotifierService() *MockNotifierService {
	return &MockNotifierService{}
}

func (m *MockNotifierService) SendConfirmation(ctx context.Context, purchase *models.Purchase, program *models.Program) {
	m.Confirmations = append(m.Confirmations, purchase.ID)
}

func (m *MockNotifierService) Resend(ctx context.Context, purchaseID string) error {
	if m.ResendError != nil {
		return m.ResendError
	}
	m.Resends = append(m.Resends, purchaseID)
	return nil
}

// MockProgramService is a mock implementation of service.ProgramService
type MockProgramService struct {
	Programs map[string]*models.Program
	Counts   map[string]int
}

func NewMockProgramService() *MockProgramService {
	return &MockProgramService{
		Programs: make(map[string]*models.Program),
		Counts:   make(map[string]int),
	}
}

func (m *MockProgramService) List(ctx context.Context) ([]*models.Program, error) {
	var programs []*models.Program
	for _, p := range m.Programs {
		if p.Published {
			programs = append(programs, p)
		}
	}
	return programs, nil
}

func (m *MockProgramService) Get(ctx context.Context, id string) (*models.Program, error) {
	p, ok := m.Programs[id]
	if !ok {
		return nil, fmt.Errorf("%w: program %s", models.ErrNotFound, id)
	}
	return p, nil
}

func (m *MockProgramService) GetCount(ctx context.Context, resource string) (int, error) {
	return m.Counts[resource], nil
}
