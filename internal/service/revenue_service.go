package service

import (
	"time"

	"loja-admin/internal/model"
	"loja-admin/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RevenueReport struct {
	Revenue   decimal.Decimal `json:"revenue"`
	Cost      decimal.Decimal `json:"cost"`
	Profit    decimal.Decimal `json:"profit"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
}

type MonthlyRevenue struct {
	Month   string          `json:"month"` // YYYY-MM
	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
	Profit  decimal.Decimal `json:"profit"`
}

type RevenueService interface {
	Compute(start, end time.Time) (*RevenueReport, error)
	ComputeMonthly(year int) ([]MonthlyRevenue, error)
	ComputeForMonth(year, month int) (*MonthlyRevenue, error)
}

type revenueService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	loc         *time.Location
}

func NewRevenueService(sRepo repository.SaleRepository, pRepo repository.ProductRepository, loc *time.Location) RevenueService {
	return &revenueService{saleRepo: sRepo, productRepo: pRepo, loc: locationOrLocal(loc)}
}

func (s *revenueService) Compute(start, end time.Time) (*RevenueReport, error) {
	from, to, err := dayRange(start, end, s.loc)
	if err != nil {
		return nil, err
	}
	revenue, cost, err := s.sum(from, to)
	if err != nil {
		return nil, err
	}
	return &RevenueReport{
		Revenue:   revenue,
		Cost:      cost,
		Profit:    revenue.Sub(cost),
		StartDate: from.Format("2006-01-02"),
		EndDate:   to.AddDate(0, 0, -1).Format("2006-01-02"),
	}, nil
}

// ComputeMonthly always returns twelve entries, months without sales
// reported as zero.
func (s *revenueService) ComputeMonthly(year int) ([]MonthlyRevenue, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	out := make([]MonthlyRevenue, 0, 12)
	for month := time.January; month <= time.December; month++ {
		m, err := s.month(year, month)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, nil
}

func (s *revenueService) ComputeForMonth(year, month int) (*MonthlyRevenue, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	if err := validateMonth(month); err != nil {
		return nil, err
	}
	return s.month(year, time.Month(month))
}

func (s *revenueService) month(year int, month time.Month) (*MonthlyRevenue, error) {
	from, to := monthRange(year, month, s.loc)
	revenue, cost, err := s.sum(from, to)
	if err != nil {
		return nil, err
	}
	return &MonthlyRevenue{
		Month:   from.Format("2006-01"),
		Revenue: revenue,
		Cost:    cost,
		Profit:  revenue.Sub(cost),
	}, nil
}

// sum totals the sales in [from, to). Cost comes from the purchase price
// frozen on each line; the products themselves must still exist, inactive
// ones included.
func (s *revenueService) sum(from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	revenue, cost := decimal.Zero, decimal.Zero

	sales, err := s.saleRepo.FindByPeriod(from, to)
	if err != nil {
		return revenue, cost, err
	}
	if len(sales) == 0 {
		return revenue, cost, nil
	}

	if err := s.checkProducts(sales); err != nil {
		return revenue, cost, err
	}

	for _, sale := range sales {
		revenue = revenue.Add(sale.Total)
		for _, line := range sale.Lines {
			cost = cost.Add(line.Cost())
		}
	}
	return revenue, cost, nil
}

func (s *revenueService) checkProducts(sales []model.Sale) error {
	seen := map[uuid.UUID]bool{}
	ids := []uuid.UUID{}
	for _, sale := range sales {
		for _, line := range sale.Lines {
			if !seen[line.ProductID] {
				seen[line.ProductID] = true
				ids = append(ids, line.ProductID)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	products, err := s.productRepo.FindAnyByIDs(ids)
	if err != nil {
		return err
	}
	found := make(map[uuid.UUID]bool, len(products))
	for _, p := range products {
		found[p.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return notFoundError("product %s referenced by a sale was not found", id)
		}
	}
	return nil
}
