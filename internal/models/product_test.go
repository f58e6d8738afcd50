// internal/models/product_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Custom Portrait", "custom-portrait"},
		{"punctuation", "Art & Craft Supplies!", "art-craft-supplies"},
		{"repeated separators", "Oil   Painting -- Large", "oil-painting-large"},
		{"leading and trailing", "  Watercolor  ", "watercolor"},
		{"digits kept", "A4 Print 2024", "a4-print-2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestRecomputeRating(t *testing.T) {
	product := &Product{
		Reviews: ProductReviews{
			{UserID: uuid.New(), Rating: 5},
			{UserID: uuid.New(), Rating: 3},
			{UserID: uuid.New(), Rating: 4},
		},
	}

	product.RecomputeRating()

	assert.InDelta(t, 4.0, product.RatingAverage, 0.001)
	assert.Equal(t, 3, product.RatingCount)
}

func TestRecomputeRatingNoReviews(t *testing.T) {
	product := &Product{RatingAverage: 4.5, RatingCount: 12}

	product.Reviews = nil
	product.RecomputeRating()

	assert.Zero(t, product.RatingAverage)
	assert.Zero(t, product.RatingCount)
}

func TestPrimaryImage(t *testing.T) {
	product := &Product{
		Images: ProductImages{
			{URL: "a.jpg"},
			{URL: "b.jpg", IsPrimary: true},
		},
	}

	img := product.PrimaryImage()
	assert.NotNil(t, img)
	assert.Equal(t, "b.jpg", img.URL)
}

func TestPrimaryImageFallsBackToFirst(t *testing.T) {
	product := &Product{
		Images: ProductImages{{URL: "a.jpg"}, {URL: "b.jpg"}},
	}

	img := product.PrimaryImage()
	assert.NotNil(t, img)
	assert.Equal(t, "a.jpg", img.URL)
}

func TestPrimaryImageEmpty(t *testing.T) {
	product := &Product{}
	assert.Nil(t, product.PrimaryImage())
}

func TestProductCategoryValid(t *testing.T) {
	assert.True(t, CategoryPaintings.Valid())
	assert.False(t, ProductCategory("sculptures-on-mars").Valid())
}
