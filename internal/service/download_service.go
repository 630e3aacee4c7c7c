package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/program-store-api/internal/config"
	"github.com/program-store-api/internal/document"
	"github.com/program-store-api/internal/models"
	"github.com/program-store-api/internal/repository"
)

// DownloadResult is the resolved artifact for a redeemed token
type DownloadResult struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.ReadCloser
	// Generated marks a substitute document produced because no stored
	// artifact was available.
	Generated bool
	Purchase  *models.Purchase
}

// downloadService is the concrete implementation of DownloadService
type downloadService struct {
	programRepo repository.ProgramRepository
	ledger      PurchaseService
	docGen      document.Generator
	cfg         *config.Config
	log         zerolog.Logger
}

// newDownloadService creates a new DownloadService
func newDownloadService(
	programRepo repository.ProgramRepository,
	ledger PurchaseService,
	docGen document.Generator,
	cfg *config.Config,
	log zerolog.Logger,
) *downloadService {
	return &downloadService{
		programRepo: programRepo,
		ledger:      ledger,
		docGen:      docGen,
		cfg:         cfg,
		log:         log.With().Str("service", "download").Logger(),
	}
}

// HandleDownload redeems the token and resolves the bytes to stream back.
// Authorization happens first: a rejected token consumes no quota and
// touches no files. A missing or unreadable artifact degrades to a generated
// document rather than failing the redeemed download.
func (s *downloadService) HandleDownload(ctx context.Context, token string) (*DownloadResult, error) {
	purchase, err := s.ledger.RedeemDownload(ctx, token)
	if err != nil {
		return nil, err
	}

	program, err := s.programRepo.GetByID(ctx, purchase.ProgramID)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, fmt.Errorf("%w: program %s", models.ErrNotFound, purchase.ProgramID)
	}

	if program.HasArtifact() {
		result, err := s.openArtifact(program, purchase)
		if err == nil {
			return result, nil
		}
		s.log.Warn().Err(err).
			Str("program_id", program.ID).
			Str("artifact", program.ArtifactPath).
			Msg("Stored artifact unavailable, falling back to generated document")
	}

	return s.generateSubstitute(program, purchase)
}

// openArtifact streams the stored program file
func (s *downloadService) openArtifact(program *models.Program, purchase *models.Purchase) (*DownloadResult, error) {
	path := filepath.Join(s.cfg.Storage.Dir, program.ArtifactPath)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: stat artifact: %v", models.ErrStorageFailure, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open artifact: %v", models.ErrStorageFailure, err)
	}

	filename := filepath.Base(program.ArtifactPath)
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &DownloadResult{
		Filename:    filename,
		ContentType: contentType,
		Size:        info.Size(),
		Body:        f,
		Purchase:    purchase,
	}, nil
}

// generateSubstitute produces the fallback document for a purchase whose
// artifact was never uploaded (or is unreadable)
func (s *downloadService) generateSubstitute(program *models.Program, purchase *models.Purchase) (*DownloadResult, error) {
	meta := &document.Metadata{
		ProgramName:  program.Name,
		BuyerEmail:   purchase.BuyerEmail,
		PurchaseDate: purchase.CreatedAt,
		DownloadURL:  s.cfg.Server.BaseURL + "/download/" + purchase.DownloadToken,
		ExpiresAt:    purchase.ExpiresAt,
		// The redeemed download is already consumed at this point.
		Remaining: purchase.RemainingDownloads() - 1,
	}

	data, err := s.docGen.Generate(meta)
	if err != nil {
		return nil, err
	}

	filename := program.Slug
	if filename == "" {
		filename = "purchase"
	}
	filename += ".pdf"

	return &DownloadResult{
		Filename:    filename,
		ContentType: "application/pdf",
		Size:        int64(len(data)),
		Body:        io.NopCloser(bytes.NewReader(data)),
		Generated:   true,
		Purchase:    purchase,
	}, nil
}
