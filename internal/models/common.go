// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserRole string

const (
	UserRoleCustomer UserRole = "user"
	UserRoleAdmin    UserRole = "admin"
)

type ProductCategory string

const (
	CategoryPaintings   ProductCategory = "paintings"
	CategoryDigitalArt  ProductCategory = "digital-art"
	CategorySketches    ProductCategory = "sketches"
	CategoryCustomArt   ProductCategory = "custom-art"
	CategoryPortraits   ProductCategory = "portraits"
	CategoryAbstract    ProductCategory = "abstract"
	CategoryArtSupplies ProductCategory = "art-supplies"
	CategoryCanvas      ProductCategory = "canvas"
	CategoryWatercolor  ProductCategory = "watercolor"
	CategoryPrints      ProductCategory = "prints"
)

var ProductCategories = []ProductCategory{
	CategoryPaintings,
	CategoryDigitalArt,
	CategorySketches,
	CategoryCustomArt,
	CategoryPortraits,
	CategoryAbstract,
	CategoryArtSupplies,
	CategoryCanvas,
	CategoryWatercolor,
	CategoryPrints,
}

func (c ProductCategory) Valid() bool {
	for _, known := range ProductCategories {
		if c == known {
			return true
		}
	}
	return false
}

type DimensionUnit string

const (
	UnitInches DimensionUnit = "inches"
	UnitCM     DimensionUnit = "cm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReturned   OrderStatus = "returned"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusReturned,
}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal statuses accept no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled || s == OrderStatusReturned
}

type PaymentMethod string

const (
	PaymentMethodPrepaid PaymentMethod = "prepaid"
	PaymentMethodCOD     PaymentMethod = "cod"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodPrepaid || m == PaymentMethodCOD
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)
