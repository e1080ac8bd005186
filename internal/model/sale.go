package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrSubtotalMismatch    = errors.New("sale line subtotal must equal unit price times quantity")
	ErrNonPositiveQuantity = errors.New("sale line quantity must be greater than zero")
)

type Sale struct {
	BaseModel
	SoldAt time.Time       `gorm:"not null;index" json:"sold_at"`
	Total  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Lines  []SaleLine      `gorm:"constraint:OnDelete:CASCADE;" json:"lines"`
}

// SaleLine keeps a frozen copy of the product fields at sale time. The
// snapshot columns are written once and never refreshed from Product, so
// later price edits or deactivation do not change historical reports.
type SaleLine struct {
	BaseModel
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Position  int             `gorm:"not null;default:0" json:"-"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`

	ProductName          string          `gorm:"type:varchar(255);not null" json:"product_name"`
	ProductPurchasePrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"product_purchase_price"`
	ProductSalePrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"product_sale_price"`
}

// NewSaleLine freezes the product snapshot and computes the subtotal.
func NewSaleLine(p *Product, quantity int) SaleLine {
	return SaleLine{
		ProductID:            p.ID,
		Quantity:             quantity,
		UnitPrice:            p.SalePrice,
		Subtotal:             p.SalePrice.Mul(decimal.NewFromInt(int64(quantity))),
		ProductName:          p.Name,
		ProductPurchasePrice: p.PurchasePrice,
		ProductSalePrice:     p.SalePrice,
	}
}

// Cost is the purchase cost recorded at sale time.
func (l SaleLine) Cost() decimal.Decimal {
	return l.ProductPurchasePrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// BeforeSave refuses to persist a line with an unset or inconsistent subtotal.
func (l *SaleLine) BeforeSave(tx *gorm.DB) error {
	if l.Quantity <= 0 {
		return ErrNonPositiveQuantity
	}
	if !l.Subtotal.Equal(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))) {
		return ErrSubtotalMismatch
	}
	return nil
}

// MonthlySaleCount is the number of sales recorded in one calendar month.
type MonthlySaleCount struct {
	Month      string `json:"month"` // YYYY-MM
	SalesCount int64  `json:"sales_count"`
}
