// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	BaseModel
	Token  string      `json:"token" gorm:"size:36;uniqueIndex;not null"`
	UserID *uint       `json:"user_id,omitempty" gorm:"index"`
	Status OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`

	BillingName         string `json:"billing_name" gorm:"size:200"`
	BillingEmail        string `json:"billing_email" gorm:"size:255"`
	BillingPhone        string `json:"billing_phone" gorm:"size:40"`
	BillingAddressLine1 string `json:"billing_address_line1" gorm:"size:255"`
	BillingAddressLine2 string `json:"billing_address_line2" gorm:"size:255"`
	BillingCity         string `json:"billing_city" gorm:"size:120"`
	BillingState        string `json:"billing_state" gorm:"size:120"`
	BillingPincode      string `json:"billing_pincode" gorm:"size:20"`

	Subtotal decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2);not null;default:0"`
	Shipping decimal.Decimal `json:"shipping" gorm:"type:decimal(10,2);not null;default:0"`
	Total    decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null;default:0"`
	Notes    string          `json:"notes" gorm:"type:text"`

	PaymentMethod    PaymentMethod `json:"payment_method" gorm:"type:varchar(20);not null;default:'online'"`
	PaymentReference string        `json:"payment_reference,omitempty" gorm:"size:255;index"`
	PaidAt           *time.Time    `json:"paid_at,omitempty"`

	// Relationships
	User  *User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.Token == "" {
		o.Token = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	if o.PaymentMethod == "" {
		o.PaymentMethod = PaymentMethodOnline
	}
	return nil
}

// OrderItem is a frozen copy of a product line; it carries no foreign key to products.
type OrderItem struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	OrderID      uint            `json:"-" gorm:"not null;index"`
	ProductID    uint            `json:"product_id" gorm:"not null"`
	ProductTitle string          `json:"product_title" gorm:"size:255;not null"`
	ProductImage string          `json:"product_image" gorm:"size:1024"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity     int             `json:"quantity" gorm:"not null;default:1"`
	CreatedAt    time.Time       `json:"-"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (o *Order) ResolveMedia(resolve MediaResolver) {
	for i := range o.Items {
		o.Items[i].ProductImage = resolve(o.Items[i].ProductImage)
	}
}
