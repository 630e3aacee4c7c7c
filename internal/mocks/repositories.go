package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/program-store-api/internal/models"
)

// MockProgramRepository is a mock implementation of ProgramRepository
type MockProgramRepository struct {
	Programs map[string]*models.Program
	GetError error
}

func NewMockProgramRepository() *MockProgramRepository {
	return &MockProgramRepository{
		Programs: make(map[string]*models.Program),
	}
}

func (m *MockProgramRepository) Create(ctx context.Context, program *models.Program) error {
	m.Programs[program.ID] = program
	return nil
}

func (m *MockProgramRepository) GetByID(ctx context.Context, id string) (*models.Program, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Programs[id], nil
}

func (m *MockProgramRepository) GetBySlug(ctx context.Context, slug string) (*models.Program, error) {
	for _, p := range m.Programs {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (m *MockProgramRepository) ListPublished(ctx context.Context) ([]*models.Program, error) {
	var programs []*models.Program
	for _, p := range m.Programs {
		if p.Published {
			programs = append(programs, p)
		}
	}
	return programs, nil
}

func (m *MockProgramRepository) Count(ctx context.Context) (int, error) {
	return len(m.Programs), nil
}

// MockPurchaseRepository is a mock implementation of PurchaseRepository.
// Mutations take a mutex and re-check their guard inside it, mirroring the
// conditional UPDATE semantics of the real store so concurrent redemption
// tests exercise the same race behavior.
type MockPurchaseRepository struct {
	mu          sync.Mutex
	Purchases   map[string]*models.Purchase
	CreateError error
	GetError    error
}

func NewMockPurchaseRepository() *MockPurchaseRepository {
	return &MockPurchaseRepository{
		Purchases: make(map[string]*models.Purchase),
	}
}

func (m *MockPurchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *purchase
	m.Purchases[purchase.ID] = &copied
	return nil
}

func (m *MockPurchaseRepository) CreatePendingIfAbsent(ctx context.Context, purchase *models.Purchase) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Purchases {
		if p.PaymentRef == purchase.PaymentRef {
			return nil
		}
	}
	copied := *purchase
	m.Purchases[purchase.ID] = &copied
	return nil
}

func (m *MockPurchaseRepository) GetByID(ctx context.Context, id string) (*models.Purchase, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Purchases[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (m *MockPurchaseRepository) GetByPaymentRef(ctx context.Context, ref string) (*models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Purchases {
		if p.PaymentRef == ref {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockPurchaseRepository) GetByToken(ctx context.Context, token string) (*models.Purchase, error) {
	if token == "" {
		return nil, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Purchases {
		if p.DownloadToken == token {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockPurchaseRepository) MarkCompleted(ctx context.Context, id, token string, completedAt, expiresAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Purchases[id]
	if !ok || p.Status != models.PurchaseStatusPending {
		return false, nil
	}
	p.Status = models.PurchaseStatusCompleted
	p.DownloadToken = token
	p.DownloadCount = 0
	p.CompletedAt = &completedAt
	p.ExpiresAt = &expiresAt
	return true, nil
}

func (m *MockPurchaseRepository) MarkFailed(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Purchases[id]
	if !ok || p.Status != models.PurchaseStatusPending {
		return false, nil
	}
	p.Status = models.PurchaseStatusFailed
	return true, nil
}

func (m *MockPurchaseRepository) MarkRefunded(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Purchases[id]
	if !ok || p.Status != models.PurchaseStatusCompleted {
		return false, nil
	}
	p.Status = models.PurchaseStatusRefunded
	return true, nil
}

func (m *MockPurchaseRepository) IncrementDownloadCount(ctx context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Purchases {
		if p.DownloadToken == token {
			if p.DownloadCount >= p.DownloadLimit {
				return false, nil
			}
			p.DownloadCount++
			return true, nil
		}
	}
	return false, nil
}

func (m *MockPurchaseRepository) ResetDownloadCount(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Purchases[id]
	if !ok {
		return false, nil
	}
	p.DownloadCount = 0
	return true, nil
}

func (m *MockPurchaseRepository) HasCompleted(ctx context.Context, userID, email, programID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Purchases {
		if p.Status != models.PurchaseStatusCompleted {
			continue
		}
		if programID != "" && p.ProgramID != programID {
			continue
		}
		if (userID != "" && p.UserID == userID) || (email != "" && p.BuyerEmail == email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockPurchaseRepository) List(ctx context.Context, filter *models.PurchaseFilter) ([]*models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var purchases []*models.Purchase
	for _, p := range m.Purchases {
		if filter != nil && filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter != nil && filter.BuyerEmail != "" && p.BuyerEmail != filter.BuyerEmail {
			continue
		}
		copied := *p
		purchases = append(purchases, &copied)
	}
	return purchases, nil
}

func (m *MockPurchaseRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Purchases), nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	Comments    map[string]*models.Comment
	CreateError error
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[string]*models.Comment),
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Comments[comment.ID] = comment
	return nil
}

func (m *MockCommentRepository) ListByProgram(ctx context.Context, programID string) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, c := range m.Comments {
		if c.ProgramID == programID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	return len(m.Comments), nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users       map[string]*models.User
	EmailToUser map[string]*models.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:       make(map[string]*models.User),
		EmailToUser: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.Users[user.ID] = user
	m.EmailToUser[user.Email] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.EmailToUser[email], nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.Users), nil
}
