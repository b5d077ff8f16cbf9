// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Cart struct {
	BaseModel
	Token    string `json:"token" gorm:"size:36;uniqueIndex;not null"`
	UserID   *uint  `json:"user_id,omitempty" gorm:"index"`
	IsActive bool   `json:"is_active" gorm:"not null;index"`

	// Relationships
	User  *User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Items []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`

	// Computed
	Subtotal  decimal.Decimal `json:"subtotal" gorm:"-"`
	ItemCount int             `json:"item_count" gorm:"-"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.Token == "" {
		c.Token = uuid.NewString()
	}
	return nil
}

// ComputeTotals fills Subtotal and ItemCount from the loaded items.
func (c *Cart) ComputeTotals() {
	subtotal := decimal.Zero
	count := 0
	for i := range c.Items {
		c.Items[i].ComputeSubtotal()
		subtotal = subtotal.Add(c.Items[i].Subtotal)
		count += c.Items[i].Quantity
	}
	c.Subtotal = subtotal
	c.ItemCount = count
}

func (c *Cart) ResolveMedia(resolve MediaResolver) {
	for i := range c.Items {
		if c.Items[i].Product != nil {
			c.Items[i].Product.ResolveMedia(resolve)
		}
	}
}

type CartItem struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	CartID        uint            `json:"-" gorm:"not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID     uint            `json:"-" gorm:"not null;uniqueIndex:idx_cart_items_cart_product"`
	Quantity      int             `json:"quantity" gorm:"not null;default:1"`
	PriceSnapshot decimal.Decimal `json:"price_snapshot" gorm:"type:decimal(10,2);not null"`

	// Relationships
	Product *Product `json:"product" gorm:"foreignKey:ProductID"`

	// Computed
	Subtotal decimal.Decimal `json:"subtotal" gorm:"-"`
}

func (i *CartItem) ComputeSubtotal() {
	i.Subtotal = i.PriceSnapshot.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
