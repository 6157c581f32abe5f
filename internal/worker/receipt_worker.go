package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipts: renders the sale's PDF ticket
// and hands it to the email queue when the customer left an address.
// PDF rendering is retried in place (3 attempts); anything still failing is
// left pending for the retry cron.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nedpos/internal/i18n"
	"nedpos/internal/infra"
	"nedpos/internal/model"
	"nedpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// MaxReceiptRetries is how many scheduled retries a receipt gets before it is
// marked as error and sent to the DLQ.
const MaxReceiptRetries = 5

// ReceiptJobPayload is the job envelope sent to QueueReceipts.
type ReceiptJobPayload struct {
	SaleID string  `json:"sale_id"`
	Email  *string `json:"email,omitempty"`
}

// StoreProfile supplies the store header printed on tickets.
type StoreProfile interface {
	Get(ctx context.Context) (*model.StoreSettings, error)
}

// ReceiptWorker renders sale receipts.
type ReceiptWorker struct {
	receiptRepo repository.ReceiptRepository
	saleRepo    repository.SaleRepository
	store       StoreProfile
	dispatcher  *Dispatcher
	storagePath string
}

// NewReceiptWorker wires all dependencies for the receipt worker.
func NewReceiptWorker(
	receiptRepo repository.ReceiptRepository,
	saleRepo repository.SaleRepository,
	store StoreProfile,
	dispatcher *Dispatcher,
	storagePath string,
) *ReceiptWorker {
	return &ReceiptWorker{
		receiptRepo: receiptRepo,
		saleRepo:    saleRepo,
		store:       store,
		dispatcher:  dispatcher,
		storagePath: storagePath,
	}
}

// Process handles one receipt job. Errors returned here are not recoverable
// by retrying (bad payload, unknown sale); transient failures are recorded on
// the receipt row instead.
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("receipt_worker: invalid payload: %w", err)
	}
	saleID, err := uuid.Parse(payload.SaleID)
	if err != nil {
		return fmt.Errorf("receipt_worker: invalid sale_id %q", payload.SaleID)
	}

	// 1. Fetch sale with items
	sale, err := w.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return fmt.Errorf("receipt_worker: sale %s: %w", saleID, err)
	}

	// 2. Find or create the receipt row
	rc, err := w.receiptRepo.FindBySaleID(ctx, saleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rc = &model.Receipt{SaleID: saleID, Status: model.ReceiptPending}
		if err := w.receiptRepo.Create(ctx, rc); err != nil {
			return fmt.Errorf("receipt_worker: create receipt: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("receipt_worker: load receipt: %w", err)
	}
	if payload.Email != nil && *payload.Email != "" {
		rc.Email = payload.Email
	}

	store, err := w.store.Get(ctx)
	if err != nil {
		scheduleRetry(rc, err, time.Now())
		return w.receiptRepo.Update(ctx, rc)
	}

	// 3. Render PDF with up to 3 attempts
	var pdfPath string
	pdfErr := withRetry(ctx, 3, func(attempt int) error {
		p, err := infra.GenerateReceiptPDF(sale, store, w.storagePath)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).Str("sale_id", payload.SaleID).Msg("receipt_worker: PDF attempt failed")
			return err
		}
		pdfPath = p
		return nil
	})
	if pdfErr != nil {
		scheduleRetry(rc, pdfErr, time.Now())
		log.Warn().Err(pdfErr).Str("sale_id", payload.SaleID).Time("next_retry_at", *rc.NextRetryAt).Msg("receipt_worker: PDF failed, scheduled retry")
		return w.receiptRepo.Update(ctx, rc)
	}
	rc.PDFPath = &pdfPath
	log.Info().Str("pdf", pdfPath).Str("sale_id", payload.SaleID).Msg("receipt_worker: PDF generated")

	// 4. No address: done. Otherwise the email worker closes the receipt.
	if rc.Email == nil {
		markIssued(rc)
		return w.receiptRepo.Update(ctx, rc)
	}
	if err := w.receiptRepo.Update(ctx, rc); err != nil {
		return err
	}
	job := receiptEmail(rc, sale, store)
	if err := w.dispatcher.EnqueueEmail(ctx, job); err != nil {
		log.Warn().Err(err).Str("email", job.ToEmail).Msg("receipt_worker: failed to enqueue email")
		scheduleRetry(rc, err, time.Now())
		return w.receiptRepo.Update(ctx, rc)
	}
	log.Info().Str("email", job.ToEmail).Msg("receipt_worker: email job enqueued")
	return nil
}

// receiptEmail builds the customer email in the store's language.
func receiptEmail(rc *model.Receipt, sale *model.Sale, store *model.StoreSettings) EmailJobPayload {
	lang := store.Language
	body := fmt.Sprintf("%s #%d\n%s: %s\n\n%s",
		i18n.T(lang, i18n.KeyTicket), sale.TicketNumber,
		i18n.T(lang, i18n.KeyTotal), i18n.Money(lang, store.Currency, sale.Total),
		i18n.T(lang, i18n.KeyThanks))
	job := EmailJobPayload{
		ReceiptID: rc.ID.String(),
		Subject:   fmt.Sprintf(i18n.T(lang, i18n.KeyReceiptEmail), store.Name),
		Body:      body,
	}
	if rc.Email != nil {
		job.ToEmail = *rc.Email
	}
	if rc.PDFPath != nil {
		job.PDFPath = *rc.PDFPath
	}
	return job
}

func markIssued(rc *model.Receipt) {
	rc.Status = model.ReceiptIssued
	rc.NextRetryAt = nil
	rc.LastError = nil
}

// scheduleRetry records a failed attempt and pushes next_retry_at out.
// It reports whether the receipt ran out of retries.
func scheduleRetry(rc *model.Receipt, cause error, now time.Time) bool {
	rc.RetryCount++
	msg := cause.Error()
	rc.LastError = &msg
	if rc.RetryCount >= MaxReceiptRetries {
		rc.Status = model.ReceiptError
		rc.NextRetryAt = nil
		return true
	}
	rc.Status = model.ReceiptPending
	next := now.Add(computeRetryBackoff(rc.RetryCount))
	rc.NextRetryAt = &next
	return false
}

// computeRetryBackoff doubles from 1 minute and caps at 1 hour.
func computeRetryBackoff(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}
	if retryCount > 7 {
		return time.Hour
	}
	d := time.Duration(1<<uint(retryCount-1)) * time.Minute
	if d > time.Hour {
		d = time.Hour
	}
	return d
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * retryUnit
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

// retryUnit is the base backoff step of withRetry; tests shrink it.
var retryUnit = time.Second
