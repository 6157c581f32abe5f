package worker

// email_worker.go
// Processes email jobs from QueueEmail and sends PDF receipts to customers.
// The outcome is written back to the receipt row so the retry cron can pick
// up failed deliveries.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nedpos/internal/infra"
	"nedpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ReceiptID string `json:"receipt_id,omitempty"`
	ToEmail   string `json:"to_email"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	PDFPath   string `json:"pdf_path"`
}

type EmailWorker struct {
	mailer      infra.Mailer
	receiptRepo repository.ReceiptRepository
}

func NewEmailWorker(mailer infra.Mailer, receiptRepo repository.ReceiptRepository) *EmailWorker {
	return &EmailWorker{mailer: mailer, receiptRepo: receiptRepo}
}

// Process sends an email with the PDF receipt as attachment.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email_worker: invalid payload: %w", err)
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return nil
	}

	sendErr := w.mailer.Send(ctx, infra.Mail{
		To:         payload.ToEmail,
		Subject:    payload.Subject,
		Body:       payload.Body,
		Attachment: payload.PDFPath,
	})

	if payload.ReceiptID == "" {
		return sendErr
	}
	id, err := uuid.Parse(payload.ReceiptID)
	if err != nil {
		return fmt.Errorf("email_worker: invalid receipt_id %q", payload.ReceiptID)
	}
	rc, err := w.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("email_worker: receipt %s: %w", id, err)
	}

	switch {
	case sendErr == nil:
		markIssued(rc)
		log.Info().Str("to", payload.ToEmail).Msg("email_worker: receipt sent")
	case errors.Is(sendErr, infra.ErrMailerDisabled):
		// The PDF exists; delivery is simply not configured.
		markIssued(rc)
		msg := sendErr.Error()
		rc.LastError = &msg
		log.Warn().Str("to", payload.ToEmail).Msg("email_worker: SMTP not configured, receipt kept local")
	default:
		exhausted := scheduleRetry(rc, sendErr, time.Now())
		log.Error().Err(sendErr).Str("to", payload.ToEmail).Bool("exhausted", exhausted).Msg("email_worker: failed to send email")
	}
	return w.receiptRepo.Update(ctx, rc)
}
