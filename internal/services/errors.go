// internal/services/errors.go
package services

import "errors"

// Domain errors surfaced to handlers, which map them to HTTP status codes
// via errors.Is. Messages are stable and safe to show to callers.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("user with this email already exists")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrValidation        = errors.New("validation failed")
)
