// internal/models/catalog.go
package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	BaseModel
	PetType   PetType `json:"pet_type" gorm:"type:varchar(20);not null;default:'dog';index"`
	Title     string  `json:"title" gorm:"size:120;not null"`
	Subtitle  string  `json:"subtitle" gorm:"size:160"`
	Image     string  `json:"image" gorm:"size:512"`
	Group     string  `json:"group" gorm:"size:80"`
	SortOrder int     `json:"order" gorm:"not null;default:0"`
}

func (c *Category) ResolveMedia(resolve MediaResolver) {
	c.Image = resolve(c.Image)
}

type Product struct {
	BaseModel
	PetType       PetType          `json:"pet_type" gorm:"type:varchar(20);not null;default:'dog';index"`
	Title         string           `json:"title" gorm:"size:220;not null"`
	Brand         string           `json:"brand" gorm:"size:120"`
	Image         string           `json:"image" gorm:"size:512"`
	Description   string           `json:"description" gorm:"type:text"`
	Price         decimal.Decimal  `json:"price" gorm:"type:decimal(10,2);not null;default:0"`
	MRP           *decimal.Decimal `json:"mrp" gorm:"type:decimal(10,2)"`
	QuantityValue decimal.Decimal  `json:"quantity_value" gorm:"type:decimal(10,2);not null;default:1"`
	QuantityUnit  UnitType         `json:"quantity_unit" gorm:"type:varchar(20);not null;default:'pcs'"`
	Rating        int              `json:"rating" gorm:"not null;default:5"`
	RatingCount   int              `json:"rating_count" gorm:"not null;default:0"`
	IsActive      bool             `json:"is_active" gorm:"not null;index"`
	SortOrder     int              `json:"order" gorm:"not null;default:0"`

	// Relationships
	Related []Product `json:"related_products,omitempty" gorm:"many2many:product_related;joinForeignKey:ProductID;joinReferences:RelatedID"`
	Reviews []Review  `json:"reviews,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// QuantityDisplay renders the pack size the way the storefront labels it, e.g. "1.5 kg".
func (p *Product) QuantityDisplay() string {
	return fmt.Sprintf("%s %s", p.QuantityValue.StringFixed(2), p.QuantityUnit)
}

func (p *Product) ResolveMedia(resolve MediaResolver) {
	p.Image = resolve(p.Image)
	for i := range p.Related {
		p.Related[i].ResolveMedia(resolve)
	}
}

// ProductRelation is the join row behind Product.Related; rows are stored in both directions.
type ProductRelation struct {
	ProductID uint `gorm:"primaryKey"`
	RelatedID uint `gorm:"primaryKey"`
}

func (ProductRelation) TableName() string {
	return "product_related"
}

type Review struct {
	BaseModel
	ProductID uint   `json:"product" gorm:"not null;index"`
	Name      string `json:"name" gorm:"size:120;not null"`
	Email     string `json:"email" gorm:"size:255;not null"`
	Rating    int    `json:"rating" gorm:"not null;default:5"`
	Body      string `json:"review" gorm:"column:review;type:text"`
}

type Banner struct {
	BaseModel
	PetType    PetType `json:"pet_type" gorm:"type:varchar(20);not null;uniqueIndex"`
	Title      string  `json:"title" gorm:"size:160;not null"`
	Subtitle   string  `json:"subtitle" gorm:"type:text"`
	LeftImage  string  `json:"left_image" gorm:"size:512"`
	RightImage string  `json:"right_image" gorm:"size:512"`
}

func (b *Banner) ResolveMedia(resolve MediaResolver) {
	b.LeftImage = resolve(b.LeftImage)
	b.RightImage = resolve(b.RightImage)
}

// ProductSummary is the list-card shape used by listings and the pet page.
type ProductSummary struct {
	ID              uint            `json:"id"`
	Title           string          `json:"title"`
	Image           string          `json:"image"`
	Price           decimal.Decimal `json:"price"`
	QuantityValue   decimal.Decimal `json:"quantity_value"`
	QuantityUnit    UnitType        `json:"quantity_unit"`
	QuantityDisplay string          `json:"quantity_display"`
	Rating          int             `json:"rating"`
	RatingCount     int             `json:"rating_count"`
}

func (p *Product) Summary() ProductSummary {
	return ProductSummary{
		ID:              p.ID,
		Title:           p.Title,
		Image:           p.Image,
		Price:           p.Price,
		QuantityValue:   p.QuantityValue,
		QuantityUnit:    p.QuantityUnit,
		QuantityDisplay: p.QuantityDisplay(),
		Rating:          p.Rating,
		RatingCount:     p.RatingCount,
	}
}

// ProductDetail is the product page payload.
type ProductDetail struct {
	ID              uint             `json:"id"`
	PetType         PetType          `json:"pet_type"`
	Title           string           `json:"title"`
	Brand           string           `json:"brand"`
	Image           string           `json:"image"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price"`
	MRP             *decimal.Decimal `json:"mrp"`
	QuantityValue   decimal.Decimal  `json:"quantity_value"`
	QuantityUnit    UnitType         `json:"quantity_unit"`
	QuantityDisplay string           `json:"quantity_display"`
	Rating          int              `json:"rating"`
	RatingCount     int              `json:"rating_count"`
	RelatedProducts []ProductSummary `json:"related_products"`
	Reviews         []Review         `json:"reviews"`
	CreatedAt       time.Time        `json:"created"`
}

func (p *Product) Detail() ProductDetail {
	related := make([]ProductSummary, 0, len(p.Related))
	for i := range p.Related {
		if p.Related[i].IsActive {
			related = append(related, p.Related[i].Summary())
		}
	}
	reviews := p.Reviews
	if reviews == nil {
		reviews = []Review{}
	}
	return ProductDetail{
		ID:              p.ID,
		PetType:         p.PetType,
		Title:           p.Title,
		Brand:           p.Brand,
		Image:           p.Image,
		Description:     p.Description,
		Price:           p.Price,
		MRP:             p.MRP,
		QuantityValue:   p.QuantityValue,
		QuantityUnit:    p.QuantityUnit,
		QuantityDisplay: p.QuantityDisplay(),
		Rating:          p.Rating,
		RatingCount:     p.RatingCount,
		RelatedProducts: related,
		Reviews:         reviews,
		CreatedAt:       p.CreatedAt,
	}
}

func (s *ProductSummary) ResolveMedia(resolve MediaResolver) {
	s.Image = resolve(s.Image)
}

func (d *ProductDetail) ResolveMedia(resolve MediaResolver) {
	d.Image = resolve(d.Image)
	for i := range d.RelatedProducts {
		d.RelatedProducts[i].ResolveMedia(resolve)
	}
}
