// internal/models/order.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderItem is a checkout-time snapshot of a cart line. Price is the unit
// price at the moment the order was placed and never tracks later catalog
// edits.
type OrderItem struct {
	ProductID     uuid.UUID `json:"product_id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Quantity      int       `json:"quantity"`
	Customization JSONB     `json:"customization,omitempty"`
}

type OrderItems []OrderItem

func (i OrderItems) Value() (driver.Value, error) {
	return json.Marshal(i)
}

func (i *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*i = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, i)
}

type StatusChange struct {
	Status    OrderStatus `json:"status"`
	Notes     string      `json:"notes,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type StatusHistory []StatusChange

func (h StatusHistory) Value() (driver.Value, error) {
	return json.Marshal(h)
}

func (h *StatusHistory) Scan(value interface{}) error {
	if value == nil {
		*h = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, h)
}

type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (c CustomerInfo) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *CustomerInfo) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, c)
}

type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

func (a ShippingAddress) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *ShippingAddress) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, a)
}

type Order struct {
	BaseModel
	OrderNumber string    `json:"order_number" gorm:"uniqueIndex;size:30;not null"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`

	Items           OrderItems      `json:"items" gorm:"type:jsonb;not null"`
	Customer        CustomerInfo    `json:"customer" gorm:"type:jsonb"`
	ShippingAddress ShippingAddress `json:"shipping_address" gorm:"type:jsonb"`

	Subtotal    float64 `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	ShippingFee float64 `json:"shipping_fee" gorm:"type:decimal(10,2);not null"`
	CODCharge   float64 `json:"cod_charge" gorm:"type:decimal(10,2);default:0"`
	TotalAmount float64 `json:"total_amount" gorm:"type:decimal(10,2);not null"`

	PaymentMethod    PaymentMethod `json:"payment_method" gorm:"type:varchar(10);not null"`
	PaymentStatus    PaymentStatus `json:"payment_status" gorm:"type:varchar(10);default:'pending'"`
	PaymentReference string        `json:"payment_reference,omitempty" gorm:"size:255"`
	PaidAt           *time.Time    `json:"paid_at,omitempty"`

	Status        OrderStatus   `json:"status" gorm:"type:varchar(15);default:'pending';index"`
	StatusHistory StatusHistory `json:"status_history" gorm:"type:jsonb"`
	ConfirmedAt   *time.Time    `json:"confirmed_at,omitempty"`
	ShippedAt     *time.Time    `json:"shipped_at,omitempty"`
	DeliveredAt   *time.Time    `json:"delivered_at,omitempty"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// allowedTransitions is the directed status graph. Cancelled and returned
// are reachable from every non-terminal state.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled, OrderStatusReturned},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled, OrderStatusReturned},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled, OrderStatusReturned},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned},
}

// CanTransitionTo reports whether the order may move to next from its
// current status.
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[o.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ApplyStatus appends to the status history and stamps the matching
// timestamp field. Timestamps are stamped once: re-entering a status never
// overwrites an earlier stamp.
func (o *Order) ApplyStatus(next OrderStatus, notes string, at time.Time) {
	o.Status = next
	o.StatusHistory = append(o.StatusHistory, StatusChange{
		Status:    next,
		Notes:     notes,
		Timestamp: at,
	})

	switch next {
	case OrderStatusConfirmed:
		if o.ConfirmedAt == nil {
			o.ConfirmedAt = &at
		}
	case OrderStatusShipped:
		if o.ShippedAt == nil {
			o.ShippedAt = &at
		}
	case OrderStatusDelivered:
		if o.DeliveredAt == nil {
			o.DeliveredAt = &at
		}
	}
}

// NewOrderNumber builds a time-based human readable order number.
func NewOrderNumber(at time.Time) string {
	return fmt.Sprintf("ORD%d", at.UnixNano()/int64(time.Millisecond))
}
