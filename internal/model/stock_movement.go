package model

import (
	"time"

	"github.com/google/uuid"
)

type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// StockMovement is one append-only ledger entry. It is written in the same
// database transaction as the stock change it records and never updated.
type StockMovement struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Direction Direction `gorm:"type:varchar(3);not null" json:"direction"`
	MovedAt   time.Time `gorm:"not null;index" json:"moved_at"`
}
