// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artwithshyz/storefront/internal/services"
	"github.com/artwithshyz/storefront/internal/utils"
)

// respondServiceError maps domain errors onto the JSON envelope. Anything
// unrecognized is a 500 with a generic message.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrUserNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, services.ErrEmailTaken):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredential):
		utils.UnauthorizedResponse(c, err.Error())
	case errors.Is(err, services.ErrEmptyCart):
		utils.ErrorResponse(c, http.StatusBadRequest, "EMPTY_CART", err.Error(), nil)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_TRANSITION", err.Error(), nil)
	case errors.Is(err, services.ErrInsufficientStock):
		utils.ErrorResponse(c, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error(), nil)
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidToken):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		utils.InternalErrorResponse(c, "")
	}
}
