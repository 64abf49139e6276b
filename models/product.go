package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string           `gorm:"not null" json:"name"`
	Brand         string           `gorm:"index" json:"brand"`
	Description   string           `json:"description"`
	FrameShape    string           `gorm:"index" json:"frame_shape"`   // e.g. "round", "aviator", "cat-eye"
	FrameMaterial string           `json:"frame_material"`             // e.g. "acetate", "titanium"
	SalePrice     float64          `gorm:"not null" json:"sale_price"` // Required
	RegularPrice  float64          `json:"regular_price"`
	BaseCost      float64          `json:"base_cost"`
	Image         string           `gorm:"not null" json:"image"`
	Weight        float64          `gorm:"not null" json:"weight"` // Required, drives shipping cost
	Stock         int              `json:"stock"`
	Categories    []Category       `gorm:"many2many:product_categories;" json:"categories"`
	Variants      []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
}

// ProductVariant is a purchasable configuration of a product (frame color)
// with its own stock and optional price override.
type ProductVariant struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Color     string  `gorm:"not null" json:"color"`
	Image     string  `json:"image"`
	SalePrice float64 `json:"sale_price"` // 0 means "use product price"
	Stock     int     `json:"stock"`
}

// UnitPrice resolves the effective price of a variant against its product.
func (v ProductVariant) UnitPrice(p Product) float64 {
	if v.SalePrice > 0 {
		return v.SalePrice
	}
	return p.SalePrice
}

// LensPackage is the server-side price authority for lens add-ons. Checkout
// resolves the add-on price from (lens_type, package_name, thickness) here
// rather than trusting the client's computed total.
type LensPackage struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	LensType    string  `gorm:"not null;uniqueIndex:idx_lens_pkg" json:"lens_type"`    // e.g. "single-vision", "progressive"
	PackageName string  `gorm:"not null;uniqueIndex:idx_lens_pkg" json:"package_name"` // e.g. "standard", "blue-light"
	Thickness   string  `gorm:"not null;uniqueIndex:idx_lens_pkg" json:"thickness"`    // e.g. "1.56", "1.67"
	Price       float64 `gorm:"not null" json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`
}
