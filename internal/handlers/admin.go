// internal/handlers/admin.go
package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/artwithshyz/storefront/internal/models"
	"github.com/artwithshyz/storefront/internal/services"
	"github.com/artwithshyz/storefront/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
	orderService *services.OrderService
}

func NewAdminHandler(adminService *services.AdminService, orderService *services.OrderService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		orderService: orderService,
	}
}

func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, stats)
}

func (h *AdminHandler) GetAnalytics(c *gin.Context) {
	analytics, err := h.adminService.GetAnalytics(c.DefaultQuery("period", "month"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, analytics)
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	filter, ok := orderFilterFromQuery(c)
	if !ok {
		return
	}

	result, err := h.adminService.ListOrders(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	pagination := utils.CreatePaginationResult(result.Orders, result.Total, filter.PaginationParams)
	utils.SetPaginationHeaders(c, pagination)
	utils.SuccessResponseWithMeta(c, gin.H{
		"orders":        result.Orders,
		"status_counts": result.StatusCounts,
	}, gin.H{
		"pagination": gin.H{
			"page":        pagination.Page,
			"limit":       pagination.Limit,
			"total":       pagination.Total,
			"total_pages": pagination.TotalPages,
		},
	})
}

func (h *AdminHandler) GetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	order, err := h.adminService.GetOrderDetails(orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

type updateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Notes  string             `json:"notes,omitempty"`
}

// UpdateOrderStatus advances an order along the fulfilment graph.
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	order, err := h.orderService.TransitionStatus(orderID, req.Status, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// ExportOrders streams the filtered order list as a CSV download.
func (h *AdminHandler) ExportOrders(c *gin.Context) {
	filter, ok := orderFilterFromQuery(c)
	if !ok {
		return
	}

	filename := fmt.Sprintf("orders-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.adminService.ExportOrdersCSV(c.Writer, filter); err != nil {
		utils.InternalErrorResponse(c, "Failed to export orders")
	}
}

func (h *AdminHandler) ListCustomers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	customers, total, err := h.adminService.ListCustomers(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(customers, total, params))
}

// GetCustomer returns one customer with recent orders and lifetime stats.
func (h *AdminHandler) GetCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid customer ID", nil)
		return
	}

	detail, err := h.adminService.GetCustomer(customerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, detail)
}

type updateCustomerStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func (h *AdminHandler) UpdateCustomerStatus(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid customer ID", nil)
		return
	}

	var req updateCustomerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	customer, err := h.adminService.SetCustomerStatus(customerID, *req.IsActive)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, customer)
}

// ExportCustomers streams the full customer list as a CSV download.
func (h *AdminHandler) ExportCustomers(c *gin.Context) {
	filename := fmt.Sprintf("customers-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.adminService.ExportCustomersCSV(c.Writer); err != nil {
		utils.InternalErrorResponse(c, "Failed to export customers")
	}
}

func (h *AdminHandler) GetLowStockProducts(c *gin.Context) {
	products, err := h.adminService.LowStockProducts()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, products)
}

func orderFilterFromQuery(c *gin.Context) (services.OrderFilter, bool) {
	filter := services.OrderFilter{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if v := c.Query("status"); v != "" {
		status := models.OrderStatus(v)
		if !status.Valid() {
			utils.BadRequestResponse(c, "Unknown order status", nil)
			return filter, false
		}
		filter.Status = status
	}
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid start_date, expected YYYY-MM-DD", nil)
			return filter, false
		}
		filter.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid end_date, expected YYYY-MM-DD", nil)
			return filter, false
		}
		// Inclusive through the end of the day
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	return filter, true
}
