// internal/models/cart.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	ProductID     uuid.UUID `json:"product_id"`
	Quantity      int       `json:"quantity"`
	Customization JSONB     `json:"customization,omitempty"`
	AddedAt       time.Time `json:"added_at"`
}

type CartItems []CartItem

func (i CartItems) Value() (driver.Value, error) {
	if i == nil {
		return json.Marshal(CartItems{})
	}
	return json.Marshal(i)
}

func (i *CartItems) Scan(value interface{}) error {
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

// Cart holds one user's pre-checkout items. Subtotal and item count are
// recomputed against live product prices on every read, never trusted from
// storage.
type Cart struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Items  CartItems `json:"items" gorm:"type:jsonb"`
}

// AddItem merges quantity and customization into an existing line for the
// product, or appends a new one. At most one line per product.
func (c *Cart) AddItem(productID uuid.UUID, quantity int, customization JSONB) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			if len(customization) > 0 {
				if c.Items[i].Customization == nil {
					c.Items[i].Customization = make(JSONB)
				}
				for k, v := range customization {
					c.Items[i].Customization[k] = v
				}
			}
			return
		}
	}

	c.Items = append(c.Items, CartItem{
		ProductID:     productID,
		Quantity:      quantity,
		Customization: customization,
		AddedAt:       time.Now(),
	})
}

// UpdateItemQuantity sets the quantity for a product's line. A quantity of
// zero or less removes the line; zero and negative quantities are never
// stored. Unknown products are a no-op.
func (c *Cart) UpdateItemQuantity(productID uuid.UUID, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}

	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem drops the line for a product. Removing an absent product is a
// no-op.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	filtered := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	c.Items = filtered
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = CartItems{}
}
