package service

import (
	"context"
	"time"

	"nedpos/internal/dto"
	"nedpos/internal/model"
	"nedpos/internal/repository"
	"nedpos/internal/worker"

	"github.com/google/uuid"
)

type ReceiptService interface {
	// GetBySale returns the receipt generated for a sale (GET /v1/receipts/:sale_id).
	GetBySale(ctx context.Context, saleID uuid.UUID) (*dto.ReceiptResponse, error)
	// PDFPath returns the filesystem path of a rendered receipt.
	PDFPath(ctx context.Context, id uuid.UUID) (string, error)
	// Retry re-queues a receipt that failed or ran out of retries.
	Retry(ctx context.Context, id uuid.UUID) (*dto.ReceiptResponse, error)
}

type receiptService struct {
	repo       repository.ReceiptRepository
	dispatcher *worker.Dispatcher
}

func NewReceiptService(repo repository.ReceiptRepository, dispatcher *worker.Dispatcher) ReceiptService {
	return &receiptService{repo: repo, dispatcher: dispatcher}
}

func (s *receiptService) GetBySale(ctx context.Context, saleID uuid.UUID) (*dto.ReceiptResponse, error) {
	rc, err := s.repo.FindBySaleID(ctx, saleID)
	if err != nil {
		return nil, notFound(err, ErrReceiptNotFound)
	}
	return receiptToResponse(rc), nil
}

func (s *receiptService) PDFPath(ctx context.Context, id uuid.UUID) (string, error) {
	rc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", notFound(err, ErrReceiptNotFound)
	}
	if rc.PDFPath == nil || *rc.PDFPath == "" {
		return "", ErrReceiptNotReady
	}
	return *rc.PDFPath, nil
}

func (s *receiptService) Retry(ctx context.Context, id uuid.UUID) (*dto.ReceiptResponse, error) {
	rc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrReceiptNotFound)
	}

	// Back into the cron's queue with a fresh budget.
	now := time.Now()
	rc.Status = model.ReceiptPending
	rc.RetryCount = 0
	rc.NextRetryAt = &now
	rc.LastError = nil
	if err := s.repo.Update(ctx, rc); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueReceipt(ctx, worker.ReceiptJobPayload{SaleID: rc.SaleID.String(), Email: rc.Email})
	}
	return receiptToResponse(rc), nil
}

func receiptToResponse(r *model.Receipt) *dto.ReceiptResponse {
	resp := &dto.ReceiptResponse{
		ID:         r.ID.String(),
		SaleID:     r.SaleID.String(),
		Status:     r.Status,
		RetryCount: r.RetryCount,
		LastError:  r.LastError,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
	if r.NextRetryAt != nil {
		s := r.NextRetryAt.Format(time.RFC3339)
		resp.NextRetryAt = &s
	}
	if r.PDFPath != nil && *r.PDFPath != "" {
		u := "/v1/receipts/pdf/" + r.ID.String()
		resp.PDFUrl = &u
	}
	return resp
}
