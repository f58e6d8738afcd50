// internal/services/admin_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/artwithshyz/storefront/internal/models"
)

func TestCustomerCSVRow(t *testing.T) {
	lastLogin := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	customer := CustomerSummary{
		User: models.User{
			Name:          "Asha Nair",
			Email:         "asha@example.com",
			Phone:         "9876543210",
			IsActive:      true,
			EmailVerified: true,
			LastLoginAt:   &lastLogin,
		},
		OrderCount: 4,
		TotalSpent: 2596.5,
	}
	customer.CreatedAt = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	row := customerCSVRow(customer)

	assert.Equal(t, []string{
		"Asha Nair", "asha@example.com", "9876543210",
		"Active", "Yes", "4", "2596.50", "2025-01-10", "2025-06-01",
	}, row)
}

func TestCustomerCSVRowDefaults(t *testing.T) {
	customer := CustomerSummary{
		User: models.User{
			Name:  "New Customer",
			Email: "new@example.com",
		},
	}
	customer.CreatedAt = time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	row := customerCSVRow(customer)

	assert.Equal(t, "N/A", row[2])
	assert.Equal(t, "Inactive", row[3])
	assert.Equal(t, "No", row[4])
	assert.Equal(t, "0", row[5])
	assert.Equal(t, "0.00", row[6])
	assert.Equal(t, "Never", row[8])
}
