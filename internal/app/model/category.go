package model

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null;size:100" json:"name"`
	ImageURL  string         `json:"image_url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	SubCategories []SubCategory `gorm:"foreignKey:CategoryID" json:"sub_categories,omitempty"`
	Products      []Product     `gorm:"foreignKey:CategoryID" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// SubCategory belongs to exactly one category; the parent never changes
// once products reference it.
type SubCategory struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	CategoryID uint           `gorm:"not null;index" json:"category_id"`
	Name       string         `gorm:"not null;size:100" json:"name"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Category Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Products []Product `gorm:"foreignKey:SubCategoryID" json:"-"`
}

func (SubCategory) TableName() string {
	return "sub_categories"
}
