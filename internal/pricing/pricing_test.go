// internal/pricing/pricing_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artwithshyz/storefront/internal/models"
)

func TestSubtotal(t *testing.T) {
	lines := []Line{
		{UnitPrice: 100, Quantity: 2},
		{UnitPrice: 49.5, Quantity: 1},
	}
	assert.Equal(t, 249.5, Subtotal(lines))
}

func TestSubtotalEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Subtotal(nil))
	assert.Equal(t, 0.0, Subtotal([]Line{}))
}

func TestGrandTotalCOD(t *testing.T) {
	// cart = [{price:100, qty:2}], COD checkout => 100*2 + 99 + 50 = 349
	subtotal := Subtotal([]Line{{UnitPrice: 100, Quantity: 2}})
	assert.Equal(t, 349.0, GrandTotal(subtotal, models.PaymentMethodCOD))
}

func TestGrandTotalPrepaid(t *testing.T) {
	subtotal := Subtotal([]Line{{UnitPrice: 100, Quantity: 2}})
	assert.Equal(t, 299.0, GrandTotal(subtotal, models.PaymentMethodPrepaid))
}

func TestSurcharge(t *testing.T) {
	assert.Equal(t, CODSurcharge, Surcharge(models.PaymentMethodCOD))
	assert.Equal(t, 0.0, Surcharge(models.PaymentMethodPrepaid))
}
