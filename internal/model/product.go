package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Name          string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Description   string          `gorm:"type:text;not null;default:''" json:"description"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"purchase_price"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"sale_price"`
	Stock         int             `gorm:"not null;default:0" json:"stock"`
	Active        bool            `gorm:"not null;default:true;index" json:"active"`
}

// ProductFilter holds the optional search predicates. Nil/empty fields are
// ignored; all set fields must match.
type ProductFilter struct {
	Name        string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	InStockOnly bool
}
