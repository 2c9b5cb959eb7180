// models/restaurant.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Restaurant struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name" gorm:"not null"`
	Description  string   `json:"description"`
	Address      string   `json:"address"`
	Cuisine      string   `json:"cuisine"`
	PriceRange   string   `json:"price_range"` // e.g., "$$", "$$$"
	DeliveryTime string   `json:"delivery_time"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	IsPromoted   bool     `json:"is_promoted" gorm:"default:false"`

	// Derived statistics, recomputed from the review set after every review
	// mutation. Never written directly by handlers.
	AvgRating   float64 `json:"avg_rating" gorm:"default:0"`
	ReviewCount int64   `json:"review_count" gorm:"default:0"`

	Images    []Image   `json:"images" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Dishes []Dish `json:"dishes,omitempty"`
}

type Image struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	FileName     string    `gorm:"not null" json:"file_name"`
	S3Key        string    `gorm:"not null;unique" json:"s3_key"`
	S3URL        string    `gorm:"not null" json:"s3_url"`
	ContentType  string    `gorm:"not null" json:"content_type"`
	Size         int64     `json:"size"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Request structs for API
type CreateRestaurantRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Address      string   `json:"address"`
	Cuisine      string   `json:"cuisine"`
	PriceRange   string   `json:"price_range"`
	DeliveryTime string   `json:"delivery_time"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	IsPromoted   bool     `json:"is_promoted"`
}

type UpdateRestaurantRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Address      *string  `json:"address,omitempty"`
	Cuisine      *string  `json:"cuisine,omitempty"`
	PriceRange   *string  `json:"price_range,omitempty"`
	DeliveryTime *string  `json:"delivery_time,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	IsPromoted   *bool    `json:"is_promoted,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}
