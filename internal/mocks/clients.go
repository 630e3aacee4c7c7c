package mocks

import (
	"context"
	"fmt"

	"github.com/program-store-api/internal/document"
	"github.com/program-store-api/internal/mailer"
	"github.com/program-store-api/internal/models"
	"github.com/program-store-api/internal/payment"
)

// MockPaymentClient is a mock implementation of payment.Client
type MockPaymentClient struct {
	Sessions      map[string]*payment.Session
	CreatedParams []*payment.CreateSessionParams
	CreateError   error
	RetrieveError error
}

func NewMockPaymentClient() *MockPaymentClient {
	return &MockPaymentClient{
		Sessions: make(map[string]*payment.Session),
	}
}

func (m *MockPaymentClient) CreateSession(ctx context.Context, params *payment.CreateSessionParams) (*payment.Session, error) {
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	m.CreatedParams = append(m.CreatedParams, params)
	session := &payment.Session{
		ID:         fmt.Sprintf("cs_test_%d", len(m.CreatedParams)),
		URL:        "https://checkout.example.com/pay/" + params.ProgramID,
		BuyerEmail: params.BuyerEmail,
		ProgramID:  params.ProgramID,
	}
	m.Sessions[session.ID] = session
	return session, nil
}

func (m *MockPaymentClient) RetrieveSession(ctx context.Context, sessionID string) (*payment.Session, error) {
	if m.RetrieveError != nil {
		return nil, m.RetrieveError
	}
	session, ok := m.Sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", models.ErrUpstreamFailure, sessionID)
	}
	return session, nil
}

// MockSender is a mock implementation of mailer.Sender
type MockSender struct {
	Sent      []*mailer.Message
	SendError error
}

func NewMockSender() *MockSender {
	return &MockSender{}
}

func (m *MockSender) Send(msg *mailer.Message) error {
	if m.SendError != nil {
		return m.SendError
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

// MockGenerator is a mock implementation of document.Generator
type MockGenerator struct {
	Generated     []*document.Metadata
	Data          []byte
	GenerateError error
}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		Data: []byte("%PDF-mock"),
	}
}

func (m *MockGenerator) Generate(meta *document.Metadata) ([]byte, error) {
	if m.GenerateError != nil {
		return nil, m.GenerateError
	}
	m.Generated = append(m.Generated, meta)
	return m.Data, nil
}
