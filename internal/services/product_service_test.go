// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artwithshyz/storefront/internal/models"
	"github.com/artwithshyz/storefront/internal/utils"
)

func TestCreateProductRequestAllowsZeroPrice(t *testing.T) {
	req := &CreateProductRequest{
		Name:        "Free Sketch Sample",
		Description: "Complimentary downloadable sketch.",
		Price:       0,
		Category:    models.CategorySketches,
	}

	assert.NoError(t, utils.ValidateStruct(req))
}

func TestCreateProductRequestRejectsNegativePrice(t *testing.T) {
	req := &CreateProductRequest{
		Name:        "Broken Listing",
		Description: "x",
		Price:       -1,
		Category:    models.CategorySketches,
	}

	assert.Error(t, utils.ValidateStruct(req))
}

func TestCreateProductRequestRequiresName(t *testing.T) {
	req := &CreateProductRequest{
		Description: "x",
		Price:       100,
		Category:    models.CategorySketches,
	}

	assert.Error(t, utils.ValidateStruct(req))
}
