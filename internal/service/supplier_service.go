package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nedpos/internal/dto"
	"nedpos/internal/model"
	"nedpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SupplierService interface {
	Create(ctx context.Context, req dto.SupplierRequest) (*model.Supplier, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
	List(ctx context.Context) ([]model.Supplier, error)
	Update(ctx context.Context, id uuid.UUID, req dto.SupplierRequest) (*model.Supplier, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// CreatePurchase records goods received from a supplier. Stock is not touched.
	CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest) (*model.Purchase, error)
	ListPurchases(ctx context.Context, supplierID *uuid.UUID) ([]model.Purchase, error)
}

type supplierService struct {
	repo     repository.SupplierRepository
	products repository.ProductRepository
	now      func() time.Time
}

func NewSupplierService(repo repository.SupplierRepository, products repository.ProductRepository) SupplierService {
	return &supplierService{repo: repo, products: products, now: time.Now}
}

func (s *supplierService) Create(ctx context.Context, req dto.SupplierRequest) (*model.Supplier, error) {
	sup := &model.Supplier{}
	applySupplierRequest(sup, req)
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *supplierService) Get(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrSupplierNotFound)
	}
	return sup, nil
}

func (s *supplierService) List(ctx context.Context) ([]model.Supplier, error) {
	return s.repo.List(ctx)
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, req dto.SupplierRequest) (*model.Supplier, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrSupplierNotFound)
	}
	applySupplierRequest(sup, req)
	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *supplierService) Delete(ctx context.Context, id uuid.UUID) error {
	return notFound(s.repo.Delete(ctx, id), ErrSupplierNotFound)
}

func (s *supplierService) CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest) (*model.Purchase, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, ErrSupplierNotFound
	}
	sup, err := s.repo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, notFound(err, ErrSupplierNotFound)
	}

	ids := make([]uuid.UUID, len(req.Items))
	for i, it := range req.Items {
		if ids[i], err = uuid.Parse(it.ProductID); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, it.ProductID)
		}
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	purchase := &model.Purchase{
		SupplierID:   sup.ID,
		SupplierName: sup.Name,
		Date:         s.now(),
		Notes:        strings.TrimSpace(req.Notes),
		TotalCost:    decimal.Zero,
	}
	for i, it := range req.Items {
		name, ok := names[ids[i]]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, it.ProductID)
		}
		purchase.Items = append(purchase.Items, model.PurchaseItem{
			ProductID:   ids[i],
			ProductName: name,
			Quantity:    it.Quantity,
			CostPrice:   it.CostPrice,
		})
		purchase.TotalCost = purchase.TotalCost.Add(it.CostPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	if err := s.repo.CreatePurchase(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

func (s *supplierService) ListPurchases(ctx context.Context, supplierID *uuid.UUID) ([]model.Purchase, error) {
	return s.repo.ListPurchases(ctx, supplierID)
}

func applySupplierRequest(sup *model.Supplier, req dto.SupplierRequest) {
	sup.Name = strings.TrimSpace(req.Name)
	sup.ContactPerson = strings.TrimSpace(req.ContactPerson)
	sup.Phone = strings.TrimSpace(req.Phone)
	sup.Email = nonEmpty(req.Email)
	sup.Address = nonEmpty(req.Address)
}

// nonEmpty turns blank optional strings into nil.
func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
