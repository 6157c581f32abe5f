package worker

// retry_cron.go
// Background goroutine that periodically re-attempts receipts stuck in
// status 'pending' with a next_retry_at in the past: the PDF is rendered if
// missing and the email is resent if an address is on file. Sends go through
// the SMTP circuit breaker so a dead relay is not hammered.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nedpos/internal/infra"
	"nedpos/internal/model"
	"nedpos/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	ReceiptRepo repository.ReceiptRepository
	SaleRepo    repository.SaleRepository
	Store       StoreProfile
	Mailer      infra.Mailer
	CB          *infra.CircuitBreaker
	RDB         *redis.Client
	StoragePath string
}

// StartRetryCron launches a background goroutine that ticks every 30s and
// retries due receipts. It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg, time.Now())
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig, now time.Time) {
	// Open breaker: skip entirely
	if cfg.CB != nil && cfg.CB.State() == infra.BreakerOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	receipts, err := cfg.ReceiptRepo.ListPendingRetries(ctx, now, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(receipts) == 0 {
		return
	}

	log.Info().Int("count", len(receipts)).Msg("retry_cron: processing pending receipts")

	for i := range receipts {
		rc := &receipts[i]

		// The breaker may trip mid-batch
		if cfg.CB != nil && cfg.CB.State() == infra.BreakerOpen {
			log.Debug().Msg("retry_cron: circuit breaker opened mid-batch, stopping")
			return
		}

		if err := retryReceipt(ctx, cfg, rc); err != nil {
			if errors.Is(err, infra.ErrBreakerOpen) {
				// Not the receipt's fault; try again next tick without burning a retry.
				log.Debug().Str("receipt_id", rc.ID.String()).Msg("retry_cron: breaker refused send")
				return
			}
			if scheduleRetry(rc, err, now) {
				log.Error().
					Str("receipt_id", rc.ID.String()).
					Str("sale_id", rc.SaleID.String()).
					Int("retries", rc.RetryCount).
					Msg("retry_cron: max retries exceeded, moving to error/DLQ")

				payload, _ := json.Marshal(ReceiptJobPayload{SaleID: rc.SaleID.String(), Email: rc.Email})
				SendToDLQ(ctx, cfg.RDB, QueueReceipts, JobReceipt, payload,
					fmt.Sprintf("max retries (%d) exceeded: %s", MaxReceiptRetries, err),
					rc.RetryCount)
			} else {
				log.Warn().
					Str("receipt_id", rc.ID.String()).
					Int("retry_count", rc.RetryCount).
					Time("next_retry_at", *rc.NextRetryAt).
					Msg("retry_cron: retry failed, scheduled next attempt")
			}
			if err := cfg.ReceiptRepo.Update(ctx, rc); err != nil {
				log.Error().Err(err).Str("receipt_id", rc.ID.String()).Msg("retry_cron: failed to save receipt")
			}
			continue
		}

		markIssued(rc)
		if err := cfg.ReceiptRepo.Update(ctx, rc); err != nil {
			log.Error().Err(err).Str("receipt_id", rc.ID.String()).Msg("retry_cron: failed to save receipt")
			continue
		}
		log.Info().
			Str("receipt_id", rc.ID.String()).
			Int("total_retries", rc.RetryCount).
			Msg("retry_cron: receipt issued after retry")
	}
}

// retryReceipt renders the PDF if missing and sends the email if an address
// is on file.
func retryReceipt(ctx context.Context, cfg RetryCronConfig, rc *model.Receipt) error {
	sale, err := cfg.SaleRepo.FindByID(ctx, rc.SaleID)
	if err != nil {
		return fmt.Errorf("load sale: %w", err)
	}
	store, err := cfg.Store.Get(ctx)
	if err != nil {
		return fmt.Errorf("load store settings: %w", err)
	}

	if rc.PDFPath == nil {
		path, err := infra.GenerateReceiptPDF(sale, store, cfg.StoragePath)
		if err != nil {
			return err
		}
		rc.PDFPath = &path
	}
	if rc.Email == nil || *rc.Email == "" || cfg.Mailer == nil {
		return nil
	}

	job := receiptEmail(rc, sale, store)
	err = cfg.Mailer.Send(ctx, infra.Mail{
		To:         job.ToEmail,
		Subject:    job.Subject,
		Body:       job.Body,
		Attachment: job.PDFPath,
	})
	if errors.Is(err, infra.ErrMailerDisabled) {
		return nil
	}
	return err
}
