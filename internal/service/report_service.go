package service

import (
	"context"
	"sort"
	"time"

	"nedpos/internal/dto"
	"nedpos/internal/model"
	"nedpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	topSellingLimit = 5
	dashboardDays   = 7
)

type ReportService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	// CustomerAnalysis ranks customers by total spent, highest first.
	CustomerAnalysis(ctx context.Context) ([]dto.CustomerAnalysis, error)
	SalesSummary(ctx context.Context, filter dto.SaleFilter) (*dto.SalesSummaryResponse, error)
}

type reportService struct {
	sales     repository.SaleRepository
	customers repository.CustomerRepository
	repairs   repository.RepairRepository
	products  repository.ProductRepository
	now       func() time.Time
}

func NewReportService(
	sales repository.SaleRepository,
	customers repository.CustomerRepository,
	repairs repository.RepairRepository,
	products repository.ProductRepository,
) ReportService {
	return &reportService{sales: sales, customers: customers, repairs: repairs, products: products, now: time.Now}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Dashboard fans the independent queries out in parallel.
func (s *reportService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	today := startOfDay(s.now())
	tomorrow := today.AddDate(0, 0, 1)
	weekStart := today.AddDate(0, 0, -(dashboardDays - 1))

	var (
		week     []model.Sale
		top      []dto.TopProduct
		pending  int64
		lowStock int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		week, err = s.sales.ListBetween(gctx, weekStart, tomorrow)
		return err
	})
	g.Go(func() (err error) {
		top, err = s.sales.TopProducts(gctx, topSellingLimit)
		return err
	})
	g.Go(func() (err error) {
		pending, err = s.repairs.CountOpen(gctx)
		return err
	})
	g.Go(func() (err error) {
		lowStock, err = s.products.CountLowStock(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byDay := make(map[string]decimal.Decimal, dashboardDays)
	resp := &dto.DashboardResponse{
		DailySales:     decimal.Zero,
		PendingRepairs: pending,
		LowStockCount:  lowStock,
		TopSelling:     top,
	}
	if resp.TopSelling == nil {
		resp.TopSelling = []dto.TopProduct{}
	}
	for _, sale := range week {
		day := sale.Date.In(today.Location()).Format("2006-01-02")
		byDay[day] = byDay[day].Add(sale.Total)
		if !sale.Date.Before(today) {
			resp.DailySales = resp.DailySales.Add(sale.Total)
			resp.ItemsSoldToday += sale.ItemCount()
		}
	}
	for i := 0; i < dashboardDays; i++ {
		day := weekStart.AddDate(0, 0, i).Format("2006-01-02")
		total, ok := byDay[day]
		if !ok {
			total = decimal.Zero
		}
		resp.SalesByDay = append(resp.SalesByDay, dto.DaySales{Date: day, Total: total})
	}
	return resp, nil
}

func (s *reportService) CustomerAnalysis(ctx context.Context) ([]dto.CustomerAnalysis, error) {
	var (
		customers []model.Customer
		sales     []model.Sale
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		customers, err = s.customers.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		sales, err = s.sales.ListByCustomers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	type agg struct {
		spent  decimal.Decimal
		visits int
		last   time.Time
	}
	stats := make(map[uuid.UUID]*agg, len(customers))
	for _, sale := range sales {
		if sale.CustomerID == nil {
			continue
		}
		a, ok := stats[*sale.CustomerID]
		if !ok {
			a = &agg{spent: decimal.Zero}
			stats[*sale.CustomerID] = a
		}
		a.spent = a.spent.Add(sale.Total)
		a.visits++
		if sale.Date.After(a.last) {
			a.last = sale.Date
		}
	}

	out := make([]dto.CustomerAnalysis, 0, len(customers))
	for _, c := range customers {
		row := dto.CustomerAnalysis{Customer: c, TotalSpent: decimal.Zero}
		if a, ok := stats[c.ID]; ok {
			row.TotalSpent = a.spent
			row.VisitCount = a.visits
			last := a.last.Format(time.RFC3339)
			row.LastVisit = &last
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSpent.GreaterThan(out[j].TotalSpent)
	})
	return out, nil
}

func (s *reportService) SalesSummary(ctx context.Context, filter dto.SaleFilter) (*dto.SalesSummaryResponse, error) {
	count, total, err := s.sales.Summary(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.SalesSummaryResponse{Count: count, Total: total}, nil
}
