// internal/models/product.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ProductImage struct {
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"is_primary"`
}

type ProductImages []ProductImage

func (i ProductImages) Value() (driver.Value, error) {
	if i == nil {
		return nil, nil
	}
	return json.Marshal(i)
}

func (i *ProductImages) Scan(value interface{}) error {
	if value == nil {
		*i = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, i)
}

type ProductReview struct {
	UserID  uuid.UUID `json:"user_id"`
	Rating  int       `json:"rating"`
	Comment string    `json:"comment,omitempty"`
	Date    time.Time `json:"date"`
}

type ProductReviews []ProductReview

func (r ProductReviews) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

func (r *ProductReviews) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, r)
}

type Dimensions struct {
	Width  float64       `json:"width,omitempty"`
	Height float64       `json:"height,omitempty"`
	Unit   DimensionUnit `json:"unit,omitempty"`
}

func (d Dimensions) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *Dimensions) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, d)
}

type Product struct {
	BaseModel
	Name           string          `json:"name" gorm:"size:255;not null"`
	Slug           string          `json:"slug" gorm:"uniqueIndex;size:255"`
	Description    string          `json:"description" gorm:"type:text"`
	Price          float64         `json:"price" gorm:"type:decimal(10,2);not null"`
	Category       ProductCategory `json:"category" gorm:"type:varchar(50);not null;index"`
	Subcategory    string          `json:"subcategory,omitempty" gorm:"size:100"`
	Images         ProductImages   `json:"images" gorm:"type:jsonb"`
	InStock        bool            `json:"in_stock" gorm:"default:true"`
	StockQuantity  int             `json:"stock_quantity" gorm:"default:1"`
	IsBestseller   bool            `json:"is_bestseller" gorm:"default:false;index"`
	IsFeatured     bool            `json:"is_featured" gorm:"default:false;index"`
	Tags           pq.StringArray  `json:"tags" gorm:"type:text[]"`
	Materials      pq.StringArray  `json:"materials" gorm:"type:text[]"`
	Dimensions     Dimensions      `json:"dimensions" gorm:"type:jsonb"`
	Customizable   bool            `json:"customizable" gorm:"default:false"`
	DeliveryTime   string          `json:"delivery_time" gorm:"size:50;default:'3-5 days'"`
	RatingAverage  float64         `json:"rating_average" gorm:"type:decimal(3,2);default:0"`
	RatingCount    int             `json:"rating_count" gorm:"default:0"`
	Reviews        ProductReviews  `json:"reviews" gorm:"type:jsonb"`
	SEOTitle       string          `json:"seo_title,omitempty" gorm:"size:255"`
	SEODescription string          `json:"seo_description,omitempty" gorm:"type:text"`
}

// Derive the slug from the name before the first insert.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" && p.Name != "" {
		p.Slug = Slugify(p.Name)
	}
	return nil
}

// Slugify lowercases the name, maps every non-alphanumeric run to a single
// hyphen and collapses repeats.
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}
	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// RecomputeRating refreshes the cached average and count from the embedded
// review list. Zero reviews resets both to 0.
func (p *Product) RecomputeRating() {
	if len(p.Reviews) == 0 {
		p.RatingAverage = 0
		p.RatingCount = 0
		return
	}

	sum := 0
	for _, review := range p.Reviews {
		sum += review.Rating
	}
	p.RatingAverage = float64(sum) / float64(len(p.Reviews))
	p.RatingCount = len(p.Reviews)
}

// PrimaryImage returns the image flagged primary, falling back to the first.
func (p *Product) PrimaryImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}
