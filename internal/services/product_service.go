// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/artwithshyz/storefront/internal/models"
	"github.com/artwithshyz/storefront/internal/utils"
)

type ProductService struct {
	db             *gorm.DB
	storageService *StorageService
}

func NewProductService(db *gorm.DB, storageService *StorageService) *ProductService {
	return &ProductService{
		db:             db,
		storageService: storageService,
	}
}

type ProductFilter struct {
	utils.PaginationParams
	Bestseller *bool
	Featured   *bool
	InStock    *bool
	MinPrice   *float64
	MaxPrice   *float64
}

type CreateProductRequest struct {
	Name           string                 `json:"name" validate:"required,max=255"`
	Description    string                 `json:"description" validate:"required"`
	Price          float64                `json:"price" validate:"min=0"`
	Category       models.ProductCategory `json:"category" validate:"required"`
	Subcategory    string                 `json:"subcategory,omitempty"`
	Images         models.ProductImages   `json:"images,omitempty"`
	InStock        *bool                  `json:"in_stock,omitempty"`
	StockQuantity  *int                   `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	IsBestseller   bool                   `json:"is_bestseller,omitempty"`
	IsFeatured     bool                   `json:"is_featured,omitempty"`
	Tags           []string               `json:"tags,omitempty"`
	Materials      []string               `json:"materials,omitempty"`
	Dimensions     *models.Dimensions     `json:"dimensions,omitempty"`
	Customizable   bool                   `json:"customizable,omitempty"`
	DeliveryTime   string                 `json:"delivery_time,omitempty"`
	SEOTitle       string                 `json:"seo_title,omitempty"`
	SEODescription string                 `json:"seo_description,omitempty"`
}

type UpdateProductRequest struct {
	Name           *string                 `json:"name,omitempty" validate:"omitempty,max=255"`
	Description    *string                 `json:"description,omitempty"`
	Price          *float64                `json:"price,omitempty" validate:"omitempty,min=0"`
	Category       *models.ProductCategory `json:"category,omitempty"`
	Subcategory    *string                 `json:"subcategory,omitempty"`
	Images         *models.ProductImages   `json:"images,omitempty"`
	InStock        *bool                   `json:"in_stock,omitempty"`
	StockQuantity  *int                    `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	IsBestseller   *bool                   `json:"is_bestseller,omitempty"`
	IsFeatured     *bool                   `json:"is_featured,omitempty"`
	Tags           *[]string               `json:"tags,omitempty"`
	Materials      *[]string               `json:"materials,omitempty"`
	Dimensions     *models.Dimensions      `json:"dimensions,omitempty"`
	Customizable   *bool                   `json:"customizable,omitempty"`
	DeliveryTime   *string                 `json:"delivery_time,omitempty"`
	SEOTitle       *string                 `json:"seo_title,omitempty"`
	SEODescription *string                 `json:"seo_description,omitempty"`
}

type AddReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
}

func (s *ProductService) ListProducts(filter ProductFilter) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", term, term)
	}
	if filter.Bestseller != nil {
		query = query.Where("is_bestseller = ?", *filter.Bestseller)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if filter.InStock != nil {
		query = query.Where("in_stock = ?", *filter.InStock)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query = utils.ApplySort(query, filter.PaginationParams, []string{"created_at", "price", "name", "rating_average"})
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) GetProduct(productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return &product, nil
}

func (s *ProductService) GetProductBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return &product, nil
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !req.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, req.Category)
	}

	product := &models.Product{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Category:       req.Category,
		Subcategory:    req.Subcategory,
		Images:         req.Images,
		InStock:        true,
		StockQuantity:  1,
		IsBestseller:   req.IsBestseller,
		IsFeatured:     req.IsFeatured,
		Tags:           pq.StringArray(req.Tags),
		Materials:      pq.StringArray(req.Materials),
		Customizable:   req.Customizable,
		DeliveryTime:   req.DeliveryTime,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.Dimensions != nil {
		product.Dimensions = *req.Dimensions
	}
	if product.DeliveryTime == "" {
		product.DeliveryTime = "3-5 days"
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(productID uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	product, err := s.GetProduct(productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
		product.Slug = models.Slugify(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, *req.Category)
		}
		product.Category = *req.Category
	}
	if req.Subcategory != nil {
		product.Subcategory = *req.Subcategory
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.IsBestseller != nil {
		product.IsBestseller = *req.IsBestseller
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.Tags != nil {
		product.Tags = pq.StringArray(*req.Tags)
	}
	if req.Materials != nil {
		product.Materials = pq.StringArray(*req.Materials)
	}
	if req.Dimensions != nil {
		product.Dimensions = *req.Dimensions
	}
	if req.Customizable != nil {
		product.Customizable = *req.Customizable
	}
	if req.DeliveryTime != nil {
		product.DeliveryTime = *req.DeliveryTime
	}
	if req.SEOTitle != nil {
		product.SEOTitle = *req.SEOTitle
	}
	if req.SEODescription != nil {
		product.SEODescription = *req.SEODescription
	}

	if err := s.db.Save(product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// DeleteProduct removes the catalog row and its image assets. Image
// deletion failures are logged, not surfaced: the product row is gone
// either way.
func (s *ProductService) DeleteProduct(productID uuid.UUID) error {
	product, err := s.GetProduct(productID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if s.storageService != nil {
		for _, image := range product.Images {
			if err := s.storageService.DeleteFile(image.URL); err != nil {
				logrus.WithError(err).WithField("url", image.URL).Warn("Failed to delete product image")
			}
		}
	}

	return nil
}

// AddReview appends a review and refreshes the cached rating aggregate.
func (s *ProductService) AddReview(productID, userID uuid.UUID, req *AddReviewRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	product, err := s.GetProduct(productID)
	if err != nil {
		return nil, err
	}

	product.Reviews = append(product.Reviews, models.ProductReview{
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
		Date:    time.Now(),
	})
	product.RecomputeRating()

	if err := s.db.Save(product).Error; err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	return product, nil
}
