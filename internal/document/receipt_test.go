package document

import (
	"bytes"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	gen := NewPDFGenerator()
	expires := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	data, err := gen.Generate(&Metadata{
		ProgramName:  "12 Week Strength Program",
		BuyerEmail:   "buyer@test.com",
		PurchaseDate: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		DownloadURL:  "http://localhost:8080/download/token-abc",
		ExpiresAt:    &expires,
		Remaining:    2,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(data) == 0 {
		t.Fatal("Expected non-empty document")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("Expected a PDF header, got %q", data[:min(len(data), 8)])
	}
}

func TestGenerate_NoExpiry(t *testing.T) {
	gen := NewPDFGenerator()

	data, err := gen.Generate(&Metadata{
		ProgramName:  "Mobility Basics",
		BuyerEmail:   "buyer@test.com",
		PurchaseDate: time.Now(),
		DownloadURL:  "http://localhost:8080/download/token-abc",
		Remaining:    3,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("Expected a PDF header")
	}
}
