package service

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/program-store-api/internal/config"
	"github.com/program-store-api/internal/document"
	"github.com/program-store-api/internal/mailer"
	"github.com/program-store-api/internal/models"
	"github.com/program-store-api/internal/repository"
)

// notifierService is the concrete implementation of NotifierService
type notifierService struct {
	purchaseRepo repository.PurchaseRepository
	programRepo  repository.ProgramRepository
	sender       mailer.Sender
	docGen       document.Generator
	cfg          *config.Config
	log          zerolog.Logger
}

// newNotifierService creates a new NotifierService
func newNotifierService(
	purchaseRepo repository.PurchaseRepository,
	programRepo repository.ProgramRepository,
	sender mailer.Sender,
	docGen document.Generator,
	cfg *config.Config,
	log zerolog.Logger,
) *notifierService {
	return &notifierService{
		purchaseRepo: purchaseRepo,
		programRepo:  programRepo,
		sender:       sender,
		docGen:       docGen,
		cfg:          cfg,
		log:          log.With().Str("service", "notifier").Logger(),
	}
}

// SendConfirmation emails the buyer their download link after completion.
// Delivery failures are logged and swallowed: the ledger and token are the
// source of truth, and a mail outage must never unwind a completed purchase.
func (s *notifierService) SendConfirmation(ctx context.Context, purchase *models.Purchase, program *models.Program) {
	if !s.cfg.Mail.Enabled {
		s.log.Debug().Str("purchase_id", purchase.ID).Msg("Mail disabled, skipping confirmation")
		return
	}

	msg, err := s.composeConfirmation(purchase, program)
	if err != nil {
		s.log.Error().Err(err).Str("purchase_id", purchase.ID).Msg("Failed to compose confirmation email")
		return
	}

	if err := s.sender.Send(msg); err != nil {
		s.log.Error().Err(err).
			Str("purchase_id", purchase.ID).
			Str("to", purchase.BuyerEmail).
			Msg("Confirmation email failed, purchase remains fulfilled")
		return
	}

	s.log.Info().Str("purchase_id", purchase.ID).Msg("Confirmation email sent")
}

// Resend regenerates and sends the same confirmation content on operator
// request. Does not touch the download counter. Unlike the completion-time
// send, failures surface to the operator.
func (s *notifierService) Resend(ctx context.Context, purchaseID string) error {
	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return err
	}
	if purchase == nil {
		return fmt.Errorf("%w: purchase %s", models.ErrNotFound, purchaseID)
	}
	if purchase.Status != models.PurchaseStatusCompleted || purchase.DownloadToken == "" {
		return fmt.Errorf("%w: purchase %s has no download token to send", models.ErrInvalidTransition, purchaseID)
	}

	program, err := s.programRepo.GetByID(ctx, purchase.ProgramID)
	if err != nil {
		return err
	}
	if program == nil {
		return fmt.Errorf("%w: program %s", models.ErrNotFound, purchase.ProgramID)
	}

	msg, err := s.composeConfirmation(purchase, program)
	if err != nil {
		return err
	}
	if err := s.sender.Send(msg); err != nil {
		return err
	}

	s.log.Info().Str("purchase_id", purchaseID).Msg("Confirmation email resent by administrator")
	return nil
}

// composeConfirmation builds the fulfillment email. The generated document
// rides along as an attachment only when no stored artifact exists, giving
// the buyer a delivery channel independent of the download endpoint.
func (s *notifierService) composeConfirmation(purchase *models.Purchase, program *models.Program) (*mailer.Message, error) {
	downloadURL := s.cfg.Server.BaseURL + "/download/" + purchase.DownloadToken

	body := fmt.Sprintf(`
		<h2>Thank you for your purchase!</h2>
		<p>You now have access to <strong>%s</strong>.</p>
		<p><a href="%s">Download your program</a></p>
		<p>The link allows up to %d downloads and expires on %s.</p>`,
		html.EscapeString(program.Name),
		downloadURL,
		purchase.DownloadLimit,
		purchase.ExpiresAt.Format("January 2, 2006"),
	)

	msg := &mailer.Message{
		To:      purchase.BuyerEmail,
		Subject: fmt.Sprintf("Your purchase: %s", program.Name),
		HTML:    body,
	}

	if !s.artifactAvailable(program) {
		data, err := s.docGen.Generate(&document.Metadata{
			ProgramName:  program.Name,
			BuyerEmail:   purchase.BuyerEmail,
			PurchaseDate: purchase.CreatedAt,
			DownloadURL:  downloadURL,
			ExpiresAt:    purchase.ExpiresAt,
			Remaining:    purchase.RemainingDownloads(),
		})
		if err != nil {
			return nil, err
		}
		filename := program.Slug
		if filename == "" {
			filename = "purchase"
		}
		msg.Attachments = append(msg.Attachments, mailer.Attachment{
			Filename:    filename + ".pdf",
			ContentType: "application/pdf",
			Data:        data,
		})
	}

	return msg, nil
}

func (s *notifierService) artifactAvailable(program *models.Program) bool {
	if !program.HasArtifact() {
		return false
	}
	_, err := os.Stat(filepath.Join(s.cfg.Storage.Dir, program.ArtifactPath))
	return err == nil
}
