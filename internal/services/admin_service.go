// internal/services/admin_service.go
package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artwithshyz/storefront/internal/config"
	"github.com/artwithshyz/storefront/internal/models"
	"github.com/artwithshyz/storefront/internal/utils"
)

// AdminService runs the read-only aggregations behind the back-office
// dashboard and listings. Every query tolerates zero rows and returns
// zeros or empty slices rather than errors.
type AdminService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAdminService(db *gorm.DB, cfg *config.Config) *AdminService {
	return &AdminService{db: db, cfg: cfg}
}

// Revenue is summed over orders in a completed state. "completed" is a
// legacy status value retained for rows imported from the previous system.
var revenueStatuses = []string{string(models.OrderStatusDelivered), "completed"}

type DashboardOverview struct {
	TotalProducts  int64   `json:"total_products"`
	TotalOrders    int64   `json:"total_orders"`
	TotalCustomers int64   `json:"total_customers"`
	TotalRevenue   float64 `json:"total_revenue"`
	TodayOrders    int64   `json:"today_orders"`
	TodayRevenue   float64 `json:"today_revenue"`
}

type MonthlySalesPoint struct {
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

type PopularProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	SoldCount int64     `json:"sold_count"`
	Revenue   float64   `json:"revenue"`
}

type LowStockProduct struct {
	ProductID     uuid.UUID `json:"product_id"`
	Name          string    `json:"name"`
	StockQuantity int       `json:"stock_quantity"`
}

type DashboardStats struct {
	Overview        DashboardOverview   `json:"overview"`
	RecentOrders    []models.Order      `json:"recent_orders"`
	LowStock        []LowStockProduct   `json:"low_stock_products"`
	MonthlySales    []MonthlySalesPoint `json:"monthly_sales"`
	PopularProducts []PopularProduct    `json:"popular_products"`
}

func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		RecentOrders:    []models.Order{},
		LowStock:        []LowStockProduct{},
		MonthlySales:    []MonthlySalesPoint{},
		PopularProducts: []PopularProduct{},
	}

	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfYear := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	if err := s.db.Model(&models.Product{}).Count(&stats.Overview.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := s.db.Model(&models.Order{}).Count(&stats.Overview.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if err := s.db.Model(&models.User{}).
		Where("role = ?", models.UserRoleCustomer).
		Count(&stats.Overview.TotalCustomers).Error; err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	if err := s.db.Model(&models.Order{}).
		Where("status IN ?", revenueStatuses).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&stats.Overview.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	if err := s.db.Model(&models.Order{}).
		Where("status IN ? AND created_at >= ?", revenueStatuses, startOfToday).
		Count(&stats.Overview.TodayOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's orders: %w", err)
	}
	if err := s.db.Model(&models.Order{}).
		Where("status IN ? AND created_at >= ?", revenueStatuses, startOfToday).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&stats.Overview.TodayRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum today's revenue: %w", err)
	}

	if err := s.db.Model(&models.Order{}).
		Order("created_at DESC").
		Limit(10).
		Find(&stats.RecentOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent orders: %w", err)
	}

	lowStock, err := s.LowStockProducts()
	if err != nil {
		return nil, err
	}
	stats.LowStock = lowStock

	monthly, err := s.MonthlySales(startOfYear)
	if err != nil {
		return nil, err
	}
	stats.MonthlySales = monthly

	popular, err := s.PopularProducts(10)
	if err != nil {
		return nil, err
	}
	stats.PopularProducts = popular

	return stats, nil
}

// LowStockProducts lists products whose stock fell below the configured
// threshold.
func (s *AdminService) LowStockProducts() ([]LowStockProduct, error) {
	products := []LowStockProduct{}
	err := s.db.Model(&models.Product{}).
		Select("id AS product_id, name, stock_quantity").
		Where("stock_quantity < ?", s.cfg.Admin.LowStockThreshold).
		Order("stock_quantity ASC").
		Limit(10).
		Scan(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch low stock products: %w", err)
	}
	return products, nil
}

// MonthlySales groups completed-order revenue and counts by calendar
// month from the given start date.
func (s *AdminService) MonthlySales(since time.Time) ([]MonthlySalesPoint, error) {
	points := []MonthlySalesPoint{}
	err := s.db.Model(&models.Order{}).
		Select("EXTRACT(MONTH FROM created_at)::int AS month, COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS orders").
		Where("created_at >= ? AND status IN ?", since, revenueStatuses).
		Group("month").
		Order("month ASC").
		Scan(&points).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch monthly sales: %w", err)
	}
	return points, nil
}

// PopularProducts ranks products by total ordered quantity across all
// orders, unnesting the JSONB line items.
func (s *AdminService) PopularProducts(limit int) ([]PopularProduct, error) {
	popular := []PopularProduct{}
	err := s.db.Raw(`
		SELECT (item->>'product_id')::uuid AS product_id,
		       item->>'name' AS name,
		       SUM((item->>'quantity')::int) AS sold_count,
		       SUM((item->>'price')::numeric * (item->>'quantity')::int) AS revenue
		FROM orders, jsonb_array_elements(items) AS item
		WHERE deleted_at IS NULL
		GROUP BY 1, 2
		ORDER BY sold_count DESC
		LIMIT ?`, limit).Scan(&popular).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch popular products: %w", err)
	}
	return popular, nil
}

type OrderFilter struct {
	utils.PaginationParams
	Status    models.OrderStatus
	StartDate *time.Time
	EndDate   *time.Time
}

type StatusCount struct {
	Status models.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

type OrderListResult struct {
	Orders       []models.Order `json:"orders"`
	Total        int64          `json:"total"`
	StatusCounts []StatusCount  `json:"status_counts"`
}

func (s *AdminService) ListOrders(filter OrderFilter) (*OrderListResult, error) {
	query := s.db.Model(&models.Order{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where(
			"order_number ILIKE ? OR customer->>'name' ILIKE ? OR customer->>'email' ILIKE ?",
			term, term, term,
		)
	}

	result := &OrderListResult{Orders: []models.Order{}, StatusCounts: []StatusCount{}}

	if err := query.Count(&result.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	listQuery := utils.ApplySort(query, filter.PaginationParams, []string{"created_at", "total_amount", "status"})
	listQuery = utils.ApplyPagination(listQuery, filter.PaginationParams)
	if err := listQuery.Preload("User").Find(&result.Orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	if err := s.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status ASC").
		Scan(&result.StatusCounts).Error; err != nil {
		return nil, fmt.Errorf("failed to count order statuses: %w", err)
	}

	return result, nil
}

func (s *AdminService) GetOrderDetails(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("User").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &order, nil
}

// ExportOrdersCSV streams the filtered order list as CSV.
func (s *AdminService) ExportOrdersCSV(w io.Writer, filter OrderFilter) error {
	query := s.db.Model(&models.Order{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return fmt.Errorf("failed to fetch orders: %w", err)
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"Order Number", "Customer Name", "Customer Email", "Total Amount", "Status", "Payment Method", "Created Date", "Items Count"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, order := range orders {
		row := []string{
			order.OrderNumber,
			order.Customer.Name,
			order.Customer.Email,
			strconv.FormatFloat(order.TotalAmount, 'f', 2, 64),
			string(order.Status),
			string(order.PaymentMethod),
			order.CreatedAt.Format("2006-01-02"),
			strconv.Itoa(len(order.Items)),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return writer.Error()
}

type CustomerSummary struct {
	models.User
	OrderCount int64   `json:"order_count"`
	TotalSpent float64 `json:"total_spent"`
}

func (s *AdminService) ListCustomers(params utils.PaginationParams) ([]CustomerSummary, int64, error) {
	query := s.db.Model(&models.User{}).Where("role = ?", models.UserRoleCustomer)

	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	query = query.Select(`users.*,
		COALESCE((SELECT COUNT(*) FROM orders WHERE orders.user_id = users.id AND orders.deleted_at IS NULL), 0) AS order_count,
		COALESCE((SELECT SUM(total_amount) FROM orders WHERE orders.user_id = users.id AND orders.deleted_at IS NULL), 0) AS total_spent`)
	query = utils.ApplySort(query, params, []string{"created_at", "name", "email"})
	query = utils.ApplyPagination(query, params)

	customers := []CustomerSummary{}
	if err := query.Scan(&customers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch customers: %w", err)
	}

	return customers, total, nil
}

type CustomerOrderStats struct {
	TotalOrders   int64   `json:"total_orders"`
	TotalSpent    float64 `json:"total_spent"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

type CustomerDetail struct {
	Customer     *models.User       `json:"customer"`
	RecentOrders []models.Order     `json:"recent_orders"`
	OrderStats   CustomerOrderStats `json:"order_stats"`
}

// GetCustomer returns a customer record with their ten most recent orders
// and lifetime order statistics. Admin accounts are not customers and read
// as not found.
func (s *AdminService) GetCustomer(customerID uuid.UUID) (*CustomerDetail, error) {
	var user models.User
	if err := s.db.Where("id = ? AND role = ?", customerID, models.UserRoleCustomer).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	detail := &CustomerDetail{Customer: &user, RecentOrders: []models.Order{}}

	if err := s.db.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(10).
		Find(&detail.RecentOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch customer orders: %w", err)
	}

	if err := s.db.Model(&models.Order{}).
		Where("user_id = ?", user.ID).
		Select("COUNT(*) AS total_orders, COALESCE(SUM(total_amount), 0) AS total_spent, COALESCE(AVG(total_amount), 0) AS avg_order_value").
		Scan(&detail.OrderStats).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch customer stats: %w", err)
	}

	return detail, nil
}

// SetCustomerStatus activates or deactivates a customer account.
func (s *AdminService) SetCustomerStatus(customerID uuid.UUID, active bool) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ? AND role = ?", customerID, models.UserRoleCustomer).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	user.IsActive = active
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update customer status: %w", err)
	}

	return &user, nil
}

// ExportCustomersCSV streams every customer with their order totals.
func (s *AdminService) ExportCustomersCSV(w io.Writer) error {
	customers := []CustomerSummary{}
	err := s.db.Model(&models.User{}).
		Where("role = ?", models.UserRoleCustomer).
		Select(`users.*,
			COALESCE((SELECT COUNT(*) FROM orders WHERE orders.user_id = users.id AND orders.deleted_at IS NULL), 0) AS order_count,
			COALESCE((SELECT SUM(total_amount) FROM orders WHERE orders.user_id = users.id AND orders.deleted_at IS NULL), 0) AS total_spent`).
		Order("created_at DESC").
		Scan(&customers).Error
	if err != nil {
		return fmt.Errorf("failed to fetch customers: %w", err)
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"Customer Name", "Email", "Phone", "Status", "Email Verified", "Total Orders", "Total Spent", "Registration Date", "Last Login"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, customer := range customers {
		row := customerCSVRow(customer)
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return writer.Error()
}

func customerCSVRow(customer CustomerSummary) []string {
	phone := customer.Phone
	if phone == "" {
		phone = "N/A"
	}
	status := "Inactive"
	if customer.IsActive {
		status = "Active"
	}
	verified := "No"
	if customer.EmailVerified {
		verified = "Yes"
	}
	lastLogin := "Never"
	if customer.LastLoginAt != nil {
		lastLogin = customer.LastLoginAt.Format("2006-01-02")
	}

	return []string{
		customer.Name,
		customer.Email,
		phone,
		status,
		verified,
		strconv.FormatInt(customer.OrderCount, 10),
		strconv.FormatFloat(customer.TotalSpent, 'f', 2, 64),
		customer.CreatedAt.Format("2006-01-02"),
		lastLogin,
	}
}

type SalesTrendPoint struct {
	Day     time.Time `json:"day"`
	Revenue float64   `json:"revenue"`
	Orders  int64     `json:"orders"`
}

type Analytics struct {
	Period     string            `json:"period"`
	SalesTrend []SalesTrendPoint `json:"sales_trend"`
	ByCategory []CategoryRollup  `json:"by_category"`
}

type CategoryRollup struct {
	Category models.ProductCategory `json:"category"`
	Products int64                  `json:"products"`
}

// GetAnalytics aggregates sales over a trailing window: week, month or
// year.
func (s *AdminService) GetAnalytics(period string) (*Analytics, error) {
	now := time.Now()
	var since time.Time
	switch period {
	case "week":
		since = now.AddDate(0, 0, -7)
	case "year":
		since = now.AddDate(-1, 0, 0)
	default:
		period = "month"
		since = now.AddDate(0, -1, 0)
	}

	analytics := &Analytics{
		Period:     period,
		SalesTrend: []SalesTrendPoint{},
		ByCategory: []CategoryRollup{},
	}

	err := s.db.Model(&models.Order{}).
		Select("date_trunc('day', created_at) AS day, COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS orders").
		Where("created_at >= ? AND status IN ?", since, revenueStatuses).
		Group("day").
		Order("day ASC").
		Scan(&analytics.SalesTrend).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sales trend: %w", err)
	}

	err = s.db.Model(&models.Product{}).
		Select("category, COUNT(*) AS products").
		Group("category").
		Order("products DESC").
		Scan(&analytics.ByCategory).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category rollup: %w", err)
	}

	return analytics, nil
}
