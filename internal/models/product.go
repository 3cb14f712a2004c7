package models

import "github.com/shopspring/decimal"

// CreatedAtLayout is the layout of Product.CreatedAt.
const CreatedAtLayout = "2006-01-02 15:04:05"

// Product represents a stock item in the inventory.
//
// Category and Brand are declared only so the store gets its foreign keys; they are
// never preloaded. Display names are resolved from the taxonomy when a view is built.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:100;not null"`
	Description string          `json:"description" gorm:"size:500;not null"`
	Price       int             `json:"price" gorm:"not null"`
	Stock       int             `json:"stock" gorm:"not null;default:0"`
	Rating      decimal.Decimal `json:"rating" gorm:"type:decimal(2,1);not null;default:0"`
	CreatedAt   string          `json:"created_at" gorm:"column:created_at;size:19;not null"`
	CategoryID  uint            `json:"category_id" gorm:"not null;index"`
	BrandID     uint            `json:"brand_id" gorm:"not null;index"`
	Category    *Category       `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Brand       *Brand          `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	ProductTags []ProductTag    `json:"product_tags,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// TagIDs returns the ids of the tags attached to the product, in join-row order.
func (p Product) TagIDs() []uint {
	ids := make([]uint, 0, len(p.ProductTags))
	for _, pt := range p.ProductTags {
		ids = append(ids, pt.TagID)
	}
	return ids
}

// ProductTag links a product to one of its tags.
type ProductTag struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	ProductID uint     `json:"product_id" gorm:"not null;index"`
	TagID     uint     `json:"tag_id" gorm:"not null;index"`
	Product   *Product `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Tag       *Tag     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
