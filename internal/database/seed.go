// internal/database/seed.go
package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/artwithshyz/storefront/internal/models"
)

// SeedInitialData populates the catalog with fixed sample products and a
// default admin account for local development.
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	// Create default admin user
	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Name:          "Store Admin",
			Email:         "admin@artwithshyz.com",
			Role:          models.UserRoleAdmin,
			IsActive:      true,
			EmailVerified: true,
		}

		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)
	if productCount > 0 {
		log.Println("Catalog already seeded, skipping products")
		return nil
	}

	for _, product := range sampleProducts() {
		if err := db.Create(&product).Error; err != nil {
			return fmt.Errorf("failed to seed product %q: %w", product.Name, err)
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}

func sampleProducts() []models.Product {
	return []models.Product{
		{
			Name:        "Custom Portrait Drawing",
			Description: "Personalized hand-drawn portrait from your photos. Perfect for gifts and home decor.",
			Price:       299,
			Category:    models.CategoryCustomArt,
			Images: models.ProductImages{
				{URL: "https://cdn.artwithshyz.com/products/custom-portrait.jpg", Alt: "Custom Portrait Drawing", IsPrimary: true},
			},
			InStock:       true,
			StockQuantity: 10,
			IsBestseller:  true,
			IsFeatured:    true,
			Tags:          []string{"portrait", "custom", "gift", "handmade"},
			Materials:     []string{"Paper", "Pencil", "Charcoal"},
			Customizable:  true,
			DeliveryTime:  "5-7 days",
		},
		{
			Name:        "Abstract Canvas Art",
			Description: "Modern abstract canvas painting perfect for contemporary spaces. Hand-painted with vibrant colors.",
			Price:       1499,
			Category:    models.CategoryPaintings,
			Images: models.ProductImages{
				{URL: "https://cdn.artwithshyz.com/products/abstract-canvas.jpg", Alt: "Abstract Canvas Art", IsPrimary: true},
			},
			InStock:       true,
			StockQuantity: 5,
			IsBestseller:  true,
			IsFeatured:    true,
			Tags:          []string{"abstract", "canvas", "modern", "colorful"},
			Materials:     []string{"Canvas", "Acrylic Paint"},
			Dimensions:    models.Dimensions{Width: 16, Height: 20, Unit: models.UnitInches},
			DeliveryTime:  "3-5 days",
		},
		{
			Name:        "Digital Art Print",
			Description: "High-quality digital art print on premium paper. Modern design perfect for any room.",
			Price:       199,
			Category:    models.CategoryDigitalArt,
			Images: models.ProductImages{
				{URL: "https://cdn.artwithshyz.com/products/digital-print.jpg", Alt: "Digital Art Print", IsPrimary: true},
			},
			InStock:       true,
			StockQuantity: 20,
			IsBestseller:  true,
			IsFeatured:    true,
			Tags:          []string{"digital", "print", "modern", "affordable"},
			Materials:     []string{"Premium Paper"},
			Dimensions:    models.Dimensions{Width: 12, Height: 16, Unit: models.UnitInches},
			DeliveryTime:  "2-3 days",
		},
		{
			Name:        "Handmade Art Journal",
			Description: "Beautiful handcrafted art journal with custom cover design. Perfect for artists and writers.",
			Price:       399,
			Category:    models.CategoryArtSupplies,
			Images: models.ProductImages{
				{URL: "https://cdn.artwithshyz.com/products/art-journal.jpg", Alt: "Handmade Art Journal", IsPrimary: true},
			},
			InStock:       true,
			StockQuantity: 15,
			IsBestseller:  true,
			Tags:          []string{"journal", "handmade", "supplies", "gift"},
			Materials:     []string{"Handmade Paper", "Cardboard", "Fabric"},
			Customizable:  true,
			DeliveryTime:  "4-6 days",
		},
		{
			Name:        "Watercolor Landscape",
			Description: "Serene watercolor landscape painting. Brings nature's beauty into your space.",
			Price:       899,
			Category:    models.CategoryWatercolor,
			Images: models.ProductImages{
				{URL: "https://cdn.artwithshyz.com/products/watercolor-landscape.jpg", Alt: "Watercolor Landscape", IsPrimary: true},
			},
			InStock:       true,
			StockQuantity: 3,
			IsFeatured:    true,
			Tags:          []string{"watercolor", "landscape", "nature"},
			Materials:     []string{"Watercolor Paper", "Watercolor Paint"},
			Dimensions:    models.Dimensions{Width: 30, Height: 40, Unit: models.UnitCM},
			DeliveryTime:  "3-5 days",
		},
	}
}
