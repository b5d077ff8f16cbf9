// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MediaResolver turns a stored media key into an absolute URL.
type MediaResolver func(key string) string

// JSONB stores free-form audit payloads.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type PetType string

const (
	PetTypeDog   PetType = "dog"
	PetTypeCat   PetType = "cat"
	PetTypeSmall PetType = "small-pets"
)

func (p PetType) Valid() bool {
	switch p {
	case PetTypeDog, PetTypeCat, PetTypeSmall:
		return true
	}
	return false
}

type UnitType string

const (
	UnitKilogram   UnitType = "kg"
	UnitGram       UnitType = "g"
	UnitMillilitre UnitType = "ml"
	UnitLitre      UnitType = "l"
	UnitPieces     UnitType = "pcs"
	UnitInch       UnitType = "inch"
	UnitPack       UnitType = "pack"
	UnitOther      UnitType = "other"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodCOD    PaymentMethod = "cod"
)

type ContactStatus string

const (
	ContactStatusNew    ContactStatus = "new"
	ContactStatusOpen   ContactStatus = "open"
	ContactStatusClosed ContactStatus = "closed"
)
