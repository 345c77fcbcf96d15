package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// IsTerminal reports whether no further transition may leave the status
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCanceled
}

// Order is the single lifecycle entity for a placed order. Status moves
// pending -> shipped -> delivered, with canceled reachable from pending
// or shipped; every move appends an OrderStatusHistory row.
type Order struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	UserID         uint            `gorm:"not null;index" json:"user_id"`
	AddressID      *uint           `gorm:"index" json:"address_id,omitempty"`
	ShippingCharge decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"shipping_charge"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Status         OrderStatus     `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	User    User                 `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Address *Address             `gorm:"foreignKey:AddressID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"address,omitempty"`
	Items   []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	History []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"history,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// StatusTimestamp returns when the order entered its current status,
// falling back to the order creation time.
func (o *Order) StatusTimestamp() time.Time {
	ts := o.CreatedAt
	for i := range o.History {
		if o.History[i].ToStatus == o.Status && o.History[i].CreatedAt.After(ts) {
			ts = o.History[i].CreatedAt
		}
	}
	return ts
}

// OrderItem is an immutable snapshot of one purchased line. ProductName
// and Price are captured at order time so later catalog edits never
// rewrite history; ProductID is kept for restocking on cancellation.
type OrderItem struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	OrderID     uint            `gorm:"not null;index" json:"order_id"`
	ProductID   uint            `gorm:"not null;index" json:"product_id"`
	ProductName string          `gorm:"not null;size:200" json:"product_name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`

	// ProductImage carries the product's current main image URL for
	// display. Filled at read time, never stored; empty when the
	// product or its image is gone.
	ProductImage string `gorm:"-" json:"product_image,omitempty"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// OrderStatusHistory is an append-only log of status transitions
type OrderStatusHistory struct {
	ID         uint        `gorm:"primarykey" json:"id"`
	OrderID    uint        `gorm:"not null;index" json:"order_id"`
	FromStatus OrderStatus `gorm:"type:varchar(20)" json:"from_status"`
	ToStatus   OrderStatus `gorm:"type:varchar(20);not null" json:"to_status"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (OrderStatusHistory) TableName() string {
	return "order_status_histories"
}
