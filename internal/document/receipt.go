package document

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/program-store-api/internal/models"
)

// Metadata describes the purchase a substitute document is generated for.
// The document stands in for the program artifact when no file was uploaded,
// so it carries everything the buyer needs to reach their content later.
type Metadata struct {
	ProgramName  string
	BuyerEmail   string
	PurchaseDate time.Time
	DownloadURL  string
	ExpiresAt    *time.Time
	Remaining    int
}

// Generator produces the substitute document for a purchase
type Generator interface {
	Generate(meta *Metadata) ([]byte, error)
}

// pdfGenerator renders the substitute document as a one-page PDF
type pdfGenerator struct{}

// NewPDFGenerator creates a PDF document generator
func NewPDFGenerator() Generator {
	return &pdfGenerator{}
}

// Generate renders the purchase confirmation PDF
func (g *pdfGenerator) Generate(meta *Metadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Purchase Confirmation", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Purchase Confirmation")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, meta.ProgramName)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Purchased by: %s", meta.BuyerEmail))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Purchase date: %s", meta.PurchaseDate.Format("January 2, 2006")))
	pdf.Ln(7)
	if meta.ExpiresAt != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Download link valid until: %s", meta.ExpiresAt.Format("January 2, 2006 15:04 MST")))
		pdf.Ln(7)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Downloads remaining: %d", meta.Remaining))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Your download link:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 200)
	pdf.WriteLinkString(6, meta.DownloadURL, meta.DownloadURL)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5,
		"The program file was not yet available at the time of purchase. "+
			"Keep this document; the link above stays valid until it expires "+
			"or the download quota is used up.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: generate document: %v", models.ErrStorageFailure, err)
	}
	return buf.Bytes(), nil
}
