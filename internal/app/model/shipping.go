package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shipping holds the single global shipping charge. The row is seeded
// at migration time and only ever updated, never added to or deleted.
type Shipping struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	Charge    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"charge"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Shipping) TableName() string {
	return "shipping_charges"
}
