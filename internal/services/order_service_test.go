// internal/services/order_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func TestStockDecrementColumnsFlipsInStock(t *testing.T) {
	cols := stockDecrementColumns(2)

	stock, ok := cols["stock_quantity"].(clause.Expr)
	require.True(t, ok)
	assert.Equal(t, "stock_quantity - ?", stock.SQL)
	assert.Equal(t, []interface{}{2}, stock.Vars)

	// in_stock is derived from the same pre-update quantity, so a product
	// sold down to zero leaves the catalog's in-stock filter immediately.
	inStock, ok := cols["in_stock"].(clause.Expr)
	require.True(t, ok)
	assert.Equal(t, "stock_quantity - ? > 0", inStock.SQL)
	assert.Equal(t, []interface{}{2}, inStock.Vars)
}
