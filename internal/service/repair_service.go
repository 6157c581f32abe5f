package service

import (
	"context"
	"strings"
	"time"

	"nedpos/internal/dto"
	"nedpos/internal/infra"
	"nedpos/internal/model"
	"nedpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type RepairService interface {
	Create(ctx context.Context, req dto.CreateRepairRequest) (*model.Repair, error)
	List(ctx context.Context, filter dto.RepairFilter) ([]model.Repair, error)
	// Advance moves the repair one step forward. Reaching COMPLETED renders the
	// pickup ticket.
	Advance(ctx context.Context, id uuid.UUID, to model.RepairStatus) (*model.Repair, error)
	TicketPath(ctx context.Context, id uuid.UUID) (string, error)
}

type repairService struct {
	repo        repository.RepairRepository
	settings    SettingsService
	storagePath string
	now         func() time.Time
}

func NewRepairService(repo repository.RepairRepository, settings SettingsService, storagePath string) RepairService {
	return &repairService{repo: repo, settings: settings, storagePath: storagePath, now: time.Now}
}

func (s *repairService) Create(ctx context.Context, req dto.CreateRepairRequest) (*model.Repair, error) {
	r := &model.Repair{
		CustomerName:     strings.TrimSpace(req.CustomerName),
		Garment:          strings.TrimSpace(req.Garment),
		Tag:              strings.TrimSpace(req.Tag),
		IssueDescription: strings.TrimSpace(req.IssueDescription),
		Status:           model.RepairPending,
		ReceivedAt:       s.now(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *repairService) List(ctx context.Context, filter dto.RepairFilter) ([]model.Repair, error) {
	return s.repo.List(ctx, strings.ToUpper(strings.TrimSpace(filter.Status)))
}

func (s *repairService) Advance(ctx context.Context, id uuid.UUID, to model.RepairStatus) (*model.Repair, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrRepairNotFound)
	}
	next, ok := r.Status.Next()
	if !ok || next != to {
		return nil, ErrInvalidTransition
	}

	r.Status = to
	if to == model.RepairCompleted {
		now := s.now()
		r.CompletedAt = &now
		s.renderTicket(ctx, r)
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	log.Info().Str("repair_id", r.ID.String()).Str("status", string(r.Status)).Msg("repair advanced")
	return r, nil
}

// renderTicket is best effort; a missing ticket never blocks the status change.
func (s *repairService) renderTicket(ctx context.Context, r *model.Repair) {
	if s.storagePath == "" || s.settings == nil {
		return
	}
	store, err := s.settings.Get(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("repair: cannot load store settings for ticket")
		return
	}
	path, err := infra.GenerateRepairTicketPDF(r, store, s.storagePath)
	if err != nil {
		log.Warn().Err(err).Str("repair_id", r.ID.String()).Msg("repair: ticket PDF failed")
		return
	}
	r.TicketPath = &path
}

func (s *repairService) TicketPath(ctx context.Context, id uuid.UUID) (string, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", notFound(err, ErrRepairNotFound)
	}
	if r.TicketPath == nil {
		return "", ErrTicketNotReady
	}
	return *r.TicketPath, nil
}
