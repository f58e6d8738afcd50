// internal/models/cart_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCartAddItemMergesExistingLine(t *testing.T) {
	productID := uuid.New()
	cart := &Cart{}

	cart.AddItem(productID, 2, nil)
	cart.AddItem(productID, 3, nil)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartAddItemMergesCustomization(t *testing.T) {
	productID := uuid.New()
	cart := &Cart{}

	cart.AddItem(productID, 1, map[string]interface{}{"color": "blue", "size": "A4"})
	cart.AddItem(productID, 1, map[string]interface{}{"color": "red"})

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "red", cart.Items[0].Customization["color"])
	assert.Equal(t, "A4", cart.Items[0].Customization["size"])
}

func TestCartAddItemKeepsOneLinePerProduct(t *testing.T) {
	cart := &Cart{}
	first := uuid.New()
	second := uuid.New()

	cart.AddItem(first, 1, nil)
	cart.AddItem(second, 2, nil)
	cart.AddItem(first, 1, nil)

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 2, cart.Items[1].Quantity)
}

func TestCartUpdateItemQuantity(t *testing.T) {
	productID := uuid.New()
	cart := &Cart{}
	cart.AddItem(productID, 2, nil)

	cart.UpdateItemQuantity(productID, 7)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestCartUpdateItemQuantityZeroRemovesLine(t *testing.T) {
	productID := uuid.New()
	cart := &Cart{}
	cart.AddItem(productID, 2, nil)

	cart.UpdateItemQuantity(productID, 0)

	assert.Empty(t, cart.Items)
}

func TestCartUpdateItemQuantityNegativeRemovesLine(t *testing.T) {
	productID := uuid.New()
	cart := &Cart{}
	cart.AddItem(productID, 2, nil)

	cart.UpdateItemQuantity(productID, -3)

	assert.Empty(t, cart.Items)
}

func TestCartUpdateItemQuantityUnknownProductIsNoop(t *testing.T) {
	productID := uuid.New()
	cart := &Cart{}
	cart.AddItem(productID, 2, nil)

	cart.UpdateItemQuantity(uuid.New(), 5)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartRemoveItem(t *testing.T) {
	keep := uuid.New()
	drop := uuid.New()
	cart := &Cart{}
	cart.AddItem(keep, 1, nil)
	cart.AddItem(drop, 1, nil)

	cart.RemoveItem(drop)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, keep, cart.Items[0].ProductID)
}

func TestCartRemoveItemAbsentProductIsNoop(t *testing.T) {
	cart := &Cart{}
	cart.AddItem(uuid.New(), 1, nil)

	cart.RemoveItem(uuid.New())

	assert.Len(t, cart.Items, 1)
}

func TestCartClear(t *testing.T) {
	cart := &Cart{}
	cart.AddItem(uuid.New(), 1, nil)
	cart.AddItem(uuid.New(), 2, nil)

	cart.Clear()

	assert.Empty(t, cart.Items)
}
