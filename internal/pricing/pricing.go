// internal/pricing/pricing.go

// Package pricing holds the total computation shared by the cart summary
// and the checkout path. Both must call these functions so a cart's
// displayed total always equals the total of the order it produces.
package pricing

import "github.com/artwithshyz/storefront/internal/models"

const (
	// ShippingFee is the flat delivery charge in rupees, independent of
	// weight, distance and item count.
	ShippingFee = 99.0

	// CODSurcharge applies only to cash-on-delivery orders.
	CODSurcharge = 50.0
)

// Line is a (unit price, quantity) pair. Cart views and order snapshots
// both reduce to this shape before totalling.
type Line struct {
	UnitPrice float64
	Quantity  int
}

// Subtotal sums unit price times quantity over all lines.
func Subtotal(lines []Line) float64 {
	total := 0.0
	for _, line := range lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

// Surcharge returns the payment-method dependent extra charge.
func Surcharge(method models.PaymentMethod) float64 {
	if method == models.PaymentMethodCOD {
		return CODSurcharge
	}
	return 0
}

// GrandTotal is subtotal plus flat shipping plus any COD surcharge.
func GrandTotal(subtotal float64, method models.PaymentMethod) float64 {
	return subtotal + ShippingFee + Surcharge(method)
}
