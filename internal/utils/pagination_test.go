// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsForQuery(query string) PaginationParams {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/products?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	params := paramsForQuery("")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultPageSize, params.Limit)
	assert.Equal(t, "created_at", params.Sort)
	assert.Equal(t, "desc", params.Order)
}

func TestGetPaginationParamsClampsLimit(t *testing.T) {
	assert.Equal(t, DefaultPageSize, paramsForQuery("limit=0").Limit)
	assert.Equal(t, DefaultPageSize, paramsForQuery("limit=500").Limit)
	assert.Equal(t, MaxPageSize, paramsForQuery("limit=60").Limit)
	assert.Equal(t, 24, paramsForQuery("limit=24").Limit)
}

func TestGetPaginationParamsClampsPageAndOrder(t *testing.T) {
	params := paramsForQuery("page=-3&order=sideways")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, "desc", params.Order)
}

func TestCreatePaginationResult(t *testing.T) {
	params := PaginationParams{Page: 2, Limit: 12}
	result := CreatePaginationResult([]string{"a"}, 25, params)

	assert.Equal(t, 2, result.Page)
	assert.Equal(t, int64(25), result.Total)
	assert.Equal(t, 3, result.TotalPages)
}

func TestCreatePaginationResultEmpty(t *testing.T) {
	result := CreatePaginationResult([]string{}, 0, PaginationParams{Page: 1, Limit: 12})
	assert.Zero(t, result.TotalPages)
}
