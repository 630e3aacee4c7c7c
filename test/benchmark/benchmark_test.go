package benchmark

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/program-store-api/internal/document"
	"github.com/program-store-api/internal/mocks"
	"github.com/program-store-api/internal/models"
	"github.com/program-store-api/internal/validation"
)

// BenchmarkRedeemIncrement benchmarks the guarded download-count increment
func BenchmarkRedeemIncrement(b *testing.B) {
	repo := mocks.NewMockPurchaseRepository()
	repo.Create(context.Background(), &models.Purchase{
		ID:            "purchase-1",
		PaymentRef:    "cs_bench_1",
		Status:        models.PurchaseStatusCompleted,
		DownloadToken: "token-bench",
		DownloadLimit: 1 << 30,
	})

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		repo.IncrementDownloadCount(context.Background(), "token-bench")
	}

	b.ReportMetric(float64(b.N)/b.Elapsed().Seconds(), "redemptions/sec")
}

// BenchmarkHasCompleted benchmarks the entitlement scan over a populated ledger
func BenchmarkHasCompleted(b *testing.B) {
	repo := mocks.NewMockPurchaseRepository()
	for i := 0; i < 1000; i++ {
		repo.Create(context.Background(), &models.Purchase{
			ID:         fmt.Sprintf("purchase-%d", i),
			ProgramID:  fmt.Sprintf("prog-%d", i%20),
			UserID:     fmt.Sprintf("user-%d", i),
			BuyerEmail: fmt.Sprintf("buyer%d@test.com", i),
			PaymentRef: fmt.Sprintf("cs_%d", i),
			Status:     models.PurchaseStatusCompleted,
			CreatedAt:  time.Now(),
		})
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		repo.HasCompleted(context.Background(), "user-999", "", "prog-19")
	}
}

// BenchmarkValidateCheckout benchmarks request validation
func BenchmarkValidateCheckout(b *testing.B) {
	req := &models.CheckoutRequest{
		BuyerEmail: "buyer@example.com",
		ProgramID:  "550e8400-e29b-41d4-a716-446655440000",
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		validation.ValidateCheckout(req)
	}
}

// BenchmarkGenerateDocument benchmarks substitute PDF rendering
func BenchmarkGenerateDocument(b *testing.B) {
	gen := document.NewPDFGenerator()
	expires := time.Now().Add(72 * time.Hour)
	meta := &document.Metadata{
		ProgramName:  "12 Week Strength Program",
		BuyerEmail:   "buyer@test.com",
		PurchaseDate: time.Now(),
		DownloadURL:  "http://localhost:8080/download/token-bench",
		ExpiresAt:    &expires,
		Remaining:    3,
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := gen.Generate(meta); err != nil {
			b.Fatal(err)
		}
	}
}
