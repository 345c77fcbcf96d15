package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrInvalidDiscount = errors.New("discount must be between 0 and 100")
)

type Product struct {
	ID                uint             `gorm:"primarykey" json:"id"`
	Name              string           `gorm:"not null;size:200;index" json:"name"`
	Description       string           `gorm:"type:text" json:"description"`
	CategoryID        uint             `gorm:"not null;index" json:"category_id"`
	SubCategoryID     *uint            `gorm:"index" json:"sub_category_id,omitempty"`
	Price             decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	OldPrice          *decimal.Decimal `gorm:"type:decimal(10,2)" json:"old_price,omitempty"`
	Discount          *int             `json:"discount,omitempty"`
	QuantityAvailable int              `gorm:"not null;default:1" json:"quantity_available"`
	BestSelling       bool             `gorm:"default:false" json:"best_selling"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	DeletedAt         gorm.DeletedAt   `gorm:"index" json:"-"`

	Category    Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SubCategory *SubCategory   `gorm:"foreignKey:SubCategoryID" json:"sub_category,omitempty"`
	Images      []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// BeforeSave validates the price and derives the discount percentage.
// Discount is only set while old_price exceeds price; otherwise it is
// cleared so a stale value never survives a price edit.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}

	if p.OldPrice != nil && p.OldPrice.GreaterThan(p.Price) {
		d := int(p.OldPrice.Sub(p.Price).
			Div(*p.OldPrice).
			Mul(decimal.NewFromInt(100)).
			Round(0).
			IntPart())
		if d < 0 || d > 100 {
			return ErrInvalidDiscount
		}
		p.Discount = &d
	} else {
		p.Discount = nil
	}

	return nil
}

// MainImage returns the image flagged as main, or nil
func (p *Product) MainImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsMain {
			return &p.Images[i]
		}
	}
	return nil
}

type ProductImage struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	ImageURL  string         `gorm:"not null" json:"image_url"`
	IsMain    bool           `gorm:"default:false" json:"is_main"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

// SliderImage is a homepage banner
type SliderImage struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Title     string         `gorm:"size:200" json:"title"`
	ImageURL  string         `gorm:"not null" json:"image_url"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (SliderImage) TableName() string {
	return "slider_images"
}
