package service

import (
	"time"

	"loja-admin/internal/model"
	"loja-admin/internal/repository"
	"loja-admin/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// timeNow is swapped in tests.
var timeNow = time.Now

// Publisher receives events after a change has been committed.
type Publisher interface {
	Publish(event ws.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(ws.Event) {}

func publisherOrNoop(p Publisher) Publisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

// StockLedger changes a product's stock and appends the matching movement.
// Callers own the transaction; both writes go through tx so they commit or
// roll back together.
type StockLedger struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
}

func NewStockLedger(products repository.ProductRepository, movements repository.StockMovementRepository) *StockLedger {
	return &StockLedger{products: products, movements: movements}
}

// Record applies quantity in the given direction. Stock is re-validated by
// the conditional update itself, so a concurrent removal that already
// consumed the stock makes this call fail with a conflict.
func (l *StockLedger) Record(tx *gorm.DB, productID uuid.UUID, quantity int, dir model.Direction, actor string) (*model.StockMovement, error) {
	if quantity <= 0 {
		return nil, validationError("quantity must be greater than zero")
	}

	delta := quantity
	if dir == model.DirectionOut {
		delta = -quantity
	}

	ok, err := l.products.AdjustStock(tx, productID, delta, actor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, l.diagnose(tx, productID, quantity)
	}

	movement := &model.StockMovement{
		ProductID: productID,
		Quantity:  quantity,
		Direction: dir,
		MovedAt:   timeNow(),
	}
	movement.CreatedBy = actor
	movement.UpdatedBy = actor
	if err := l.movements.Create(tx, movement); err != nil {
		return nil, err
	}
	return movement, nil
}

// diagnose explains why the conditional update matched no row.
func (l *StockLedger) diagnose(tx *gorm.DB, productID uuid.UUID, quantity int) error {
	p, err := l.products.FindAnyByID(tx, productID)
	if isNotFound(err) {
		return notFoundError("product %s not found", productID)
	}
	if err != nil {
		return err
	}
	if !p.Active {
		return conflictError("product '%s' is inactive", p.Name)
	}
	return conflictError("insufficient stock for product '%s': available %d, requested %d", p.Name, p.Stock, quantity)
}
