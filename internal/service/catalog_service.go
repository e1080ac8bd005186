package service

import (
	"fmt"

	"loja-admin/internal/model"
	"loja-admin/internal/repository"
	"loja-admin/internal/ws"
	"loja-admin/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductInput enumerates exactly the fields an edit may change. Prices
// are pointers so an omitted price is rejected instead of read as zero.
type ProductInput struct {
	Name          string           `json:"name" validate:"required,max=255"`
	Description   string           `json:"description" validate:"max=2000"`
	PurchasePrice *decimal.Decimal `json:"purchase_price" validate:"required,dgte0,dscale2"`
	SalePrice     *decimal.Decimal `json:"sale_price" validate:"required,dgte0,dscale2"`
}

// CreateProductInput adds the opening stock, which is booked as an IN
// movement so the ledger explains every unit on hand.
type CreateProductInput struct {
	ProductInput
	InitialStock int `json:"initial_stock" validate:"gte=0"`
}

type CatalogService interface {
	ListActive() ([]model.Product, error)
	GetActive(id uuid.UUID) (*model.Product, error)
	GetAny(id uuid.UUID) (*model.Product, error)
	Create(in *CreateProductInput, actor string) (*model.Product, error)
	Update(id uuid.UUID, in *ProductInput, actor string) (*model.Product, error)
	Deactivate(id uuid.UUID, actor string) error
	Reactivate(id uuid.UUID, actor string) error
	Search(filter model.ProductFilter) ([]model.Product, error)

	AddStock(id uuid.UUID, quantity int, actor string) error
	RemoveStock(id uuid.UUID, quantity int, actor string) error
	ListMovements(id uuid.UUID) ([]model.StockMovement, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	ledger       *StockLedger
	db           *gorm.DB
	events       Publisher
}

func NewCatalogService(pRepo repository.ProductRepository, mRepo repository.StockMovementRepository, ledger *StockLedger, db *gorm.DB, events Publisher) CatalogService {
	return &catalogService{
		productRepo:  pRepo,
		movementRepo: mRepo,
		ledger:       ledger,
		db:           db,
		events:       publisherOrNoop(events),
	}
}

func validateInput(in interface{}) error {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		firstErr := errs[0]
		return validationError("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	return nil
}

func (s *catalogService) ListActive() ([]model.Product, error) {
	return s.productRepo.FindAllActive()
}

func (s *catalogService) GetActive(id uuid.UUID) (*model.Product, error) {
	p, err := s.productRepo.FindActiveByID(nil, id)
	if isNotFound(err) {
		return nil, notFoundError("product %s not found or inactive", id)
	}
	return p, err
}

func (s *catalogService) GetAny(id uuid.UUID) (*model.Product, error) {
	p, err := s.productRepo.FindAnyByID(nil, id)
	if isNotFound(err) {
		return nil, notFoundError("product %s not found", id)
	}
	return p, err
}

func (s *catalogService) Create(in *CreateProductInput, actor string) (*model.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:          in.Name,
		Description:   in.Description,
		PurchasePrice: *in.PurchasePrice,
		SalePrice:     *in.SalePrice,
		Active:        true,
	}
	product.CreatedBy = actor
	product.UpdatedBy = actor

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Create(tx, product); err != nil {
			return err
		}
		if in.InitialStock > 0 {
			if _, err := s.ledger.Record(tx, product.ID, in.InitialStock, model.DirectionIn, actor); err != nil {
				return err
			}
			product.Stock = in.InitialStock
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ws.Event{
		Type:    "catalog_update",
		Action:  "product_created",
		Data:    product,
		Actor:   actor,
		Message: fmt.Sprintf("%s created product '%s'", actor, product.Name),
	})
	return product, nil
}

// Update overwrites the editable fields and leaves Active and Stock alone,
// whichever state the product is in.
func (s *catalogService) Update(id uuid.UUID, in *ProductInput, actor string) (*model.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindAnyByID(nil, id)
	if isNotFound(err) {
		return nil, notFoundError("product %s not found", id)
	}
	if err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Description = in.Description
	existing.PurchasePrice = *in.PurchasePrice
	existing.SalePrice = *in.SalePrice
	existing.UpdatedBy = actor

	if err := s.productRepo.Save(nil, existing); err != nil {
		return nil, err
	}

	s.events.Publish(ws.Event{
		Type:    "catalog_update",
		Action:  "product_updated",
		Data:    existing,
		Actor:   actor,
		Message: fmt.Sprintf("%s updated product '%s'", actor, existing.Name),
	})
	return existing, nil
}

func (s *catalogService) Deactivate(id uuid.UUID, actor string) error {
	return s.setActive(id, false, actor)
}

func (s *catalogService) Reactivate(id uuid.UUID, actor string) error {
	return s.setActive(id, true, actor)
}

func (s *catalogService) setActive(id uuid.UUID, active bool, actor string) error {
	var product *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		p, err := s.productRepo.FindAnyByID(tx, id)
		if isNotFound(err) {
			return notFoundError("product %s not found", id)
		}
		if err != nil {
			return err
		}
		if p.Active == active {
			if active {
				return conflictError("product '%s' is already active", p.Name)
			}
			return conflictError("product '%s' is already inactive", p.Name)
		}
		p.Active = active
		p.UpdatedBy = actor
		product = p
		return s.productRepo.Save(tx, p)
	})
	if err != nil {
		return err
	}

	action := "product_deactivated"
	if active {
		action = "product_reactivated"
	}
	s.events.Publish(ws.Event{
		Type:   "catalog_update",
		Action: action,
		Data:   map[string]interface{}{"id": product.ID, "name": product.Name},
		Actor:  actor,
	})
	return nil
}

func (s *catalogService) Search(filter model.ProductFilter) ([]model.Product, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MaxPrice.LessThan(*filter.MinPrice) {
		return nil, validationError("precoMax must not be lower than precoMin")
	}
	return s.productRepo.Search(filter)
}

func (s *catalogService) AddStock(id uuid.UUID, quantity int, actor string) error {
	return s.moveStock(id, quantity, model.DirectionIn, actor)
}

func (s *catalogService) RemoveStock(id uuid.UUID, quantity int, actor string) error {
	return s.moveStock(id, quantity, model.DirectionOut, actor)
}

func (s *catalogService) moveStock(id uuid.UUID, quantity int, dir model.Direction, actor string) error {
	if quantity <= 0 {
		return validationError("quantity must be greater than zero")
	}

	var product *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.ledger.Record(tx, id, quantity, dir, actor); err != nil {
			return err
		}
		p, err := s.productRepo.FindAnyByID(tx, id)
		if err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return err
	}

	action, verb := "stock_in", "added"
	if dir == model.DirectionOut {
		action, verb = "stock_out", "removed"
	}
	s.events.Publish(ws.Event{
		Type:   "stock_update",
		Action: action,
		Data: map[string]interface{}{
			"product_id": product.ID,
			"name":       product.Name,
			"quantity":   quantity,
			"new_stock":  product.Stock,
		},
		Actor:   actor,
		Message: fmt.Sprintf("%s %s %d units of '%s'", actor, verb, quantity, product.Name),
	})
	return nil
}

func (s *catalogService) ListMovements(id uuid.UUID) ([]model.StockMovement, error) {
	if _, err := s.GetAny(id); err != nil {
		return nil, err
	}
	return s.movementRepo.FindByProduct(id)
}
