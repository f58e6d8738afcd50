// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artwithshyz/storefront/internal/models"
	"github.com/artwithshyz/storefront/internal/pricing"
)

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// CartLine is a cart item resolved against the live catalog.
type CartLine struct {
	Product       *models.Product `json:"product"`
	Quantity      int             `json:"quantity"`
	Customization models.JSONB    `json:"customization,omitempty"`
	AddedAt       time.Time       `json:"added_at"`
	LineTotal     float64         `json:"line_total"`
}

// CartView is what callers see: items with live prices plus totals
// recomputed on every read. Lines whose product no longer exists are
// dropped rather than failing the whole read.
type CartView struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Items     []CartLine `json:"items"`
	Subtotal  float64    `json:"subtotal"`
	ItemCount int        `json:"item_count"`
}

func (s *CartService) GetCart(userID uuid.UUID) (*CartView, error) {
	cart, err := s.getOrCreateCart(userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(cart)
}

func (s *CartService) AddItem(userID, productID uuid.UUID, quantity int, customization models.JSONB) (*CartView, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	// Verify the product exists before touching the cart
	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	cart, err := s.getOrCreateCart(userID)
	if err != nil {
		return nil, err
	}

	cart.AddItem(productID, quantity, customization)
	if err := s.db.Save(cart).Error; err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return s.resolve(cart)
}

// UpdateQuantity sets the quantity of a cart line. A quantity of zero or
// less removes the line entirely; this is the documented client policy and
// zero/negative quantities are never persisted.
func (s *CartService) UpdateQuantity(userID, productID uuid.UUID, quantity int) (*CartView, error) {
	cart, err := s.getOrCreateCart(userID)
	if err != nil {
		return nil, err
	}

	cart.UpdateItemQuantity(productID, quantity)
	if err := s.db.Save(cart).Error; err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return s.resolve(cart)
}

// RemoveItem is idempotent: removing a product that is not in the cart is
// a no-op, not an error.
func (s *CartService) RemoveItem(userID, productID uuid.UUID) (*CartView, error) {
	cart, err := s.getOrCreateCart(userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID)
	if err := s.db.Save(cart).Error; err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return s.resolve(cart)
}

func (s *CartService) Clear(userID uuid.UUID) (*CartView, error) {
	cart, err := s.getOrCreateCart(userID)
	if err != nil {
		return nil, err
	}

	cart.Clear()
	if err := s.db.Save(cart).Error; err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	return s.resolve(cart)
}

func (s *CartService) getOrCreateCart(userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID, Items: models.CartItems{}}
		if err := s.db.Create(&cart).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}
		return &cart, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return &cart, nil
}

// resolve joins cart items against current product records and recomputes
// subtotal and item count from live prices.
func (s *CartService) resolve(cart *models.Cart) (*CartView, error) {
	view := &CartView{
		ID:     cart.ID,
		UserID: cart.UserID,
		Items:  []CartLine{},
	}

	if len(cart.Items) == 0 {
		return view, nil
	}

	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	var products []models.Product
	if err := s.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve cart products: %w", err)
	}

	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]pricing.Line, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			// Product was deleted since it was added; contributes nothing.
			continue
		}

		view.Items = append(view.Items, CartLine{
			Product:       product,
			Quantity:      item.Quantity,
			Customization: item.Customization,
			AddedAt:       item.AddedAt,
			LineTotal:     product.Price * float64(item.Quantity),
		})
		view.ItemCount += item.Quantity
		lines = append(lines, pricing.Line{UnitPrice: product.Price, Quantity: item.Quantity})
	}

	view.Subtotal = pricing.Subtotal(lines)
	return view, nil
}
