// internal/services/payment_service.go
package services

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/artwithshyz/storefront/internal/config"
	"github.com/artwithshyz/storefront/internal/models"
)

// PaymentService fronts the prepaid gateway. COD orders never touch it.
type PaymentService struct {
	db     *gorm.DB
	config *config.Config
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string    `json:"payment_intent_id" validate:"required"`
	OrderID         uuid.UUID `json:"order_id" validate:"required"`
}

func NewPaymentService(db *gorm.DB, config *config.Config) *PaymentService {
	// Initialize Stripe
	stripe.Key = config.Payment.StripeSecretKey

	return &PaymentService{
		db:     db,
		config: config,
	}
}

// CreatePaymentIntent registers the order total with the gateway and
// returns the directive the client needs to complete payment.
// gatewayAmount converts a rupee total to paise. Rounded, not truncated:
// binary float error on amounts like 2185.55 would otherwise lose a paisa.
func gatewayAmount(total float64) int64 {
	return int64(math.Round(total * 100))
}

func (s *PaymentService) CreatePaymentIntent(order *models.Order) (*PaymentDirective, error) {
	// Gateway amounts are in the currency's smallest unit
	amountInPaise := gatewayAmount(order.TotalAmount)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInPaise),
		Currency: stripe.String(s.config.Payment.Currency),
	}
	params.AddMetadata("order_id", order.ID.String())
	params.AddMetadata("order_number", order.OrderNumber)
	params.AddMetadata("customer_email", order.Customer.Email)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &PaymentDirective{
		OrderID:      order.ID,
		Amount:       order.TotalAmount,
		Currency:     s.config.Payment.Currency,
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
	}, nil
}

// GetPaymentStatus asks the gateway for the current state of an intent.
func (s *PaymentService) GetPaymentStatus(paymentIntentID string) (stripe.PaymentIntentStatus, error) {
	pi, err := paymentintent.Get(paymentIntentID, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get payment intent: %w", err)
	}
	return pi.Status, nil
}
