package service

import (
	"fmt"
	"time"

	"loja-admin/internal/model"
	"loja-admin/internal/repository"
	"loja-admin/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleLineRequest struct {
	ProductID *uuid.UUID `json:"product_id" validate:"required,uuid_required"`
	Quantity  *int       `json:"quantity" validate:"required,gt=0"`
}

type SaleRequest struct {
	Items []SaleLineRequest `json:"items" validate:"required,min=1,dive"`
}

type SaleService interface {
	Create(req *SaleRequest, actor string) (*model.Sale, error)
	GetByID(id uuid.UUID) (*model.Sale, error)
	ListByPeriod(start, end time.Time) ([]model.Sale, error)
	CountByMonth(year int) ([]model.MonthlySaleCount, error)
}

type saleService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	ledger      *StockLedger
	db          *gorm.DB
	events      Publisher
	loc         *time.Location
}

func NewSaleService(pRepo repository.ProductRepository, sRepo repository.SaleRepository, ledger *StockLedger, db *gorm.DB, events Publisher, loc *time.Location) SaleService {
	return &saleService{
		productRepo: pRepo,
		saleRepo:    sRepo,
		ledger:      ledger,
		db:          db,
		events:      publisherOrNoop(events),
		loc:         locationOrLocal(loc),
	}
}

// Create runs the whole sale in one transaction: product checks, stock
// deductions, ledger entries and the sale with its lines. Any failure
// rolls every line back.
func (s *saleService) Create(req *SaleRequest, actor string) (*model.Sale, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, validationError("a sale must contain at least one item")
	}
	for i, item := range req.Items {
		if item.ProductID == nil || *item.ProductID == uuid.Nil || item.Quantity == nil {
			return nil, validationError("item %d: product_id and quantity are required", i)
		}
		if *item.Quantity <= 0 {
			return nil, validationError("item %d: quantity must be greater than zero", i)
		}
	}
	if err := validateInput(req); err != nil {
		return nil, err
	}

	var sale *model.Sale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		lines := make([]model.SaleLine, 0, len(req.Items))
		total := decimal.Zero

		for i, item := range req.Items {
			qty := *item.Quantity
			product, err := s.productRepo.FindActiveByID(tx, *item.ProductID)
			if isNotFound(err) {
				return conflictError("product %s not found or inactive", *item.ProductID)
			}
			if err != nil {
				return err
			}
			if product.Stock < qty {
				return conflictError("insufficient stock for product '%s': available %d, requested %d", product.Name, product.Stock, qty)
			}

			line := model.NewSaleLine(product, qty)
			line.Position = i
			line.CreatedBy = actor
			line.UpdatedBy = actor

			if _, err := s.ledger.Record(tx, product.ID, qty, model.DirectionOut, actor); err != nil {
				return err
			}

			total = total.Add(line.Subtotal)
			lines = append(lines, line)
		}

		sale = &model.Sale{
			SoldAt: timeNow().In(s.loc),
			Total:  total,
			Lines:  lines,
		}
		sale.CreatedBy = actor
		sale.UpdatedBy = actor
		return s.saleRepo.Create(tx, sale)
	})
	if err != nil {
		return nil, asSaleConflict(err)
	}

	s.events.Publish(ws.Event{
		Type:   "sale_update",
		Action: "sale_committed",
		Data: map[string]interface{}{
			"id":      sale.ID,
			"total":   sale.Total,
			"items":   len(sale.Lines),
			"sold_at": sale.SoldAt,
		},
		Actor:   actor,
		Message: fmt.Sprintf("%s recorded a sale of %s", actor, sale.Total.StringFixed(2)),
	})
	return sale, nil
}

// asSaleConflict reports every failure inside the sale transaction as a
// conflict; raw persistence errors (serialization failures, lock timeouts)
// are wrapped with a descriptive message.
func asSaleConflict(err error) error {
	switch KindOf(err) {
	case KindConflict:
		return err
	case KindNotFound, KindValidation:
		return &Error{Kind: KindConflict, Message: err.Error()}
	}
	return &Error{Kind: KindConflict, Message: "failed to record sale", Err: err}
}

func (s *saleService) GetByID(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if isNotFound(err) {
		return nil, notFoundError("sale %s not found", id)
	}
	return sale, err
}

func (s *saleService) ListByPeriod(start, end time.Time) ([]model.Sale, error) {
	from, to, err := dayRange(start, end, s.loc)
	if err != nil {
		return nil, err
	}
	return s.saleRepo.FindByPeriod(from, to)
}

// CountByMonth returns only the months of year that had at least one sale.
func (s *saleService) CountByMonth(year int) ([]model.MonthlySaleCount, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}

	counts := []model.MonthlySaleCount{}
	for month := time.January; month <= time.December; month++ {
		from, to := monthRange(year, month, s.loc)
		n, err := s.saleRepo.CountByPeriod(from, to)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			counts = append(counts, model.MonthlySaleCount{Month: from.Format("2006-01"), SalesCount: n})
		}
	}
	return counts, nil
}
