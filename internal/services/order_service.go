// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artwithshyz/storefront/internal/database"
	"github.com/artwithshyz/storefront/internal/models"
	"github.com/artwithshyz/storefront/internal/pricing"
	"github.com/artwithshyz/storefront/internal/utils"
)

type OrderService struct {
	db                  *gorm.DB
	paymentService      *PaymentService
	notificationService *NotificationService
}

func NewOrderService(db *gorm.DB, paymentService *PaymentService, notificationService *NotificationService) *OrderService {
	return &OrderService{
		db:                  db,
		paymentService:      paymentService,
		notificationService: notificationService,
	}
}

type CheckoutRequest struct {
	Customer struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
		Phone string `json:"phone" validate:"required"`
	} `json:"customer"`
	ShippingAddress struct {
		Street  string `json:"street" validate:"required"`
		City    string `json:"city" validate:"required"`
		State   string `json:"state" validate:"required"`
		Pincode string `json:"pincode" validate:"required,pincode"`
		Country string `json:"country" validate:"required"`
	} `json:"shipping_address"`
	PaymentMethod models.PaymentMethod `json:"payment_method" validate:"required"`
}

// PaymentDirective tells the client how to initiate the prepaid gateway
// flow. Nil for COD orders, which are ready for fulfilment immediately.
type PaymentDirective struct {
	OrderID      uuid.UUID `json:"order_id"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	ClientSecret string    `json:"client_secret"`
	PaymentID    string    `json:"payment_id"`
}

type CheckoutResult struct {
	Order   *models.Order     `json:"order"`
	Payment *PaymentDirective `json:"payment,omitempty"`
}

// PlaceOrder converts the user's cart into an immutable order. Unit prices
// are snapshotted from the catalog at this moment and stock is decremented
// inside the same transaction that creates the order and clears the cart.
func (s *OrderService) PlaceOrder(userID uuid.UUID, req *CheckoutRequest) (*CheckoutResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.PaymentMethod)
	}

	var order *models.Order
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return fmt.Errorf("failed to load cart: %w", err)
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		items := make(models.OrderItems, 0, len(cart.Items))
		lines := make([]pricing.Line, 0, len(cart.Items))
		for _, cartItem := range cart.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", cartItem.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Product vanished after it was added; skip the line.
					continue
				}
				return fmt.Errorf("failed to load product: %w", err)
			}

			// Atomic decrement guarded by the current quantity.
			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", product.ID, cartItem.Quantity).
				UpdateColumns(stockDecrementColumns(cartItem.Quantity))
			if result.Error != nil {
				return fmt.Errorf("failed to decrement stock: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}

			items = append(items, models.OrderItem{
				ProductID:     product.ID,
				Name:          product.Name,
				Price:         product.Price,
				Quantity:      cartItem.Quantity,
				Customization: cartItem.Customization,
			})
			lines = append(lines, pricing.Line{UnitPrice: product.Price, Quantity: cartItem.Quantity})
		}

		if len(items) == 0 {
			return ErrEmptyCart
		}

		now := time.Now()
		subtotal := pricing.Subtotal(lines)

		order = &models.Order{
			OrderNumber: models.NewOrderNumber(now),
			UserID:      userID,
			Items:       items,
			Customer: models.CustomerInfo{
				Name:  req.Customer.Name,
				Email: req.Customer.Email,
				Phone: req.Customer.Phone,
			},
			ShippingAddress: models.ShippingAddress{
				Street:  req.ShippingAddress.Street,
				City:    req.ShippingAddress.City,
				State:   req.ShippingAddress.State,
				Pincode: req.ShippingAddress.Pincode,
				Country: req.ShippingAddress.Country,
			},
			Subtotal:      subtotal,
			ShippingFee:   pricing.ShippingFee,
			CODCharge:     pricing.Surcharge(req.PaymentMethod),
			TotalAmount:   pricing.GrandTotal(subtotal, req.PaymentMethod),
			PaymentMethod: req.PaymentMethod,
			PaymentStatus: models.PaymentStatusPending,
			Status:        models.OrderStatusPending,
			StatusHistory: models.StatusHistory{
				{Status: models.OrderStatusPending, Timestamp: now},
			},
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		// The order is durably accepted once this transaction commits, so
		// the cart can be cleared in the same unit of work.
		cart.Clear()
		if err := tx.Save(&cart).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{Order: order}

	if req.PaymentMethod == models.PaymentMethodPrepaid {
		directive, err := s.paymentService.CreatePaymentIntent(order)
		if err != nil {
			// The order stays pending and unpaid; the client may retry
			// payment initiation without re-placing the order.
			return nil, fmt.Errorf("failed to initiate payment: %w", err)
		}
		result.Payment = directive
	}

	if s.notificationService != nil {
		go s.notificationService.SendOrderConfirmationEmail(order)
	}

	return result, nil
}

// stockDecrementColumns builds the column assignments for a guarded stock
// decrement. Both columns read the pre-update quantity, so in_stock flips
// off in the same statement when the remaining stock reaches zero.
func stockDecrementColumns(quantity int) map[string]interface{} {
	return map[string]interface{}{
		"stock_quantity": gorm.Expr("stock_quantity - ?", quantity),
		"in_stock":       gorm.Expr("stock_quantity - ? > 0", quantity),
	}
}

// TransitionStatus moves an order along the status graph, appending to the
// status history. Transitions outside the directed graph are rejected.
func (s *OrderService) TransitionStatus(orderID uuid.UUID, next models.OrderStatus, notes string) (*models.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}

	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if !order.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}

	order.ApplyStatus(next, notes, time.Now())
	if err := s.db.Save(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return &order, nil
}

// MarkPaid records a successful gateway payment. Duplicate success signals
// for an order already marked paid are a no-op.
func (s *OrderService) MarkPaid(orderID uuid.UUID, paymentReference string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if order.PaymentStatus == models.PaymentStatusPaid {
		return &order, nil
	}

	now := time.Now()
	order.PaymentStatus = models.PaymentStatusPaid
	order.PaymentReference = paymentReference
	order.PaidAt = &now

	if err := s.db.Save(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return &order, nil
}

// MarkPaymentFailed leaves the order pending and unpaid so the customer
// can retry.
func (s *OrderService) MarkPaymentFailed(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if order.PaymentStatus == models.PaymentStatusPaid {
		return &order, nil
	}

	order.PaymentStatus = models.PaymentStatusFailed
	if err := s.db.Save(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return &order, nil
}

func (s *OrderService) GetOrder(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &order, nil
}

// GetUserOrder fetches an order only if it belongs to the given user.
func (s *OrderService) GetUserOrder(userID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &order, nil
}

func (s *OrderService) ListUserOrders(userID uuid.UUID, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "total_amount", "status"})
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}
