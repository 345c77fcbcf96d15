package model

import (
	"time"

	"gorm.io/gorm"
)

// Address is a saved shipping contact for checkout
type Address struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	FirstName   string         `gorm:"size:100;not null" json:"first_name"`
	LastName    string         `gorm:"size:100" json:"last_name"`
	PhoneNumber string         `gorm:"size:30;not null" json:"phone_number"`
	Address     string         `gorm:"type:text;not null" json:"address"`
	City        string         `gorm:"size:100" json:"city"`
	District    string         `gorm:"size:100" json:"district"`
	State       string         `gorm:"size:100" json:"state"`
	ZipCode     string         `gorm:"size:10" json:"zipcode"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Address) TableName() string {
	return "addresses"
}
