// internal/handlers/payment.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"

	"github.com/artwithshyz/storefront/internal/models"
	"github.com/artwithshyz/storefront/internal/services"
	"github.com/artwithshyz/storefront/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
	orderService   *services.OrderService
}

func NewPaymentHandler(paymentService *services.PaymentService, orderService *services.OrderService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		orderService:   orderService,
	}
}

// RetryPayment re-initiates the gateway flow for an order that is still
// awaiting payment, e.g. after the client abandoned the first attempt.
func (h *PaymentHandler) RetryPayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	order, err := h.orderService.GetUserOrder(userID, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if order.PaymentStatus == models.PaymentStatusPaid {
		utils.ConflictResponse(c, "Order is already paid")
		return
	}

	directive, err := h.paymentService.CreatePaymentIntent(order)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to initiate payment")
		return
	}

	utils.SuccessResponse(c, directive)
}

// ConfirmPayment verifies the intent with the gateway rather than trusting
// the client's claim, then records the result on the order.
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	if _, err := h.orderService.GetUserOrder(userID, req.OrderID); err != nil {
		respondServiceError(c, err)
		return
	}

	status, err := h.paymentService.GetPaymentStatus(req.PaymentIntentID)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to verify payment")
		return
	}

	switch status {
	case stripe.PaymentIntentStatusSucceeded:
		order, err := h.orderService.MarkPaid(req.OrderID, req.PaymentIntentID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		utils.SuccessResponse(c, order)
	case stripe.PaymentIntentStatusCanceled:
		order, err := h.orderService.MarkPaymentFailed(req.OrderID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		utils.SuccessResponse(c, order)
	default:
		utils.ErrorResponse(c, http.StatusPaymentRequired, "PAYMENT_INCOMPLETE", "Payment has not completed yet", gin.H{
			"payment_status": string(status),
		})
	}
}
