package service

import (
	"context"
	"encoding/csv"
	"io"
	"strings"
	"time"

	"nedpos/internal/dto"
	"nedpos/internal/model"
	"nedpos/internal/repository"

	"github.com/google/uuid"
)

// utf8BOM makes spreadsheet apps open the export as UTF-8 (Arabic names).
const utf8BOM = "\uFEFF"

var customerCSVHeader = []string{"id", "name", "phone", "email", "notes", "created_at"}

type CustomerService interface {
	Create(ctx context.Context, req dto.CustomerRequest) (*model.Customer, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.CustomerRequest) (*model.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ExportCSV writes every customer as CSV, oldest first.
	ExportCSV(ctx context.Context, w io.Writer) error
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, req dto.CustomerRequest) (*model.Customer, error) {
	c := &model.Customer{}
	applyCustomerRequest(c, req)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCustomerNotFound)
	}
	return c, nil
}

func (s *customerService) List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error) {
	customers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerListResponse{Data: customers, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.CustomerRequest) (*model.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCustomerNotFound)
	}
	applyCustomerRequest(c, req)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the customer. Past sales keep their name snapshot.
func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	return notFound(s.repo.Delete(ctx, id), ErrCustomerNotFound)
}

func (s *customerService) ExportCSV(ctx context.Context, w io.Writer) error {
	customers, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(customerCSVHeader); err != nil {
		return err
	}
	for _, c := range customers {
		email := ""
		if c.Email != nil {
			email = *c.Email
		}
		row := []string{c.ID.String(), c.Name, c.Phone, email, c.Notes, c.CreatedAt.Format(time.RFC3339)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func applyCustomerRequest(c *model.Customer, req dto.CustomerRequest) {
	c.Name = strings.TrimSpace(req.Name)
	c.Phone = strings.TrimSpace(req.Phone)
	c.Email = nonEmpty(req.Email)
	c.Notes = strings.TrimSpace(req.Notes)
}
