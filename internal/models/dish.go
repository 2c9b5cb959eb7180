// models/dish.go
package models

import (
	"time"
)

// Attribute is a named, weighted rating dimension (e.g., "Freshness" weight 1.0).
// Reference data managed through the admin API; Weight multiplies the attribute's
// contribution to a review's overall rating.
type Attribute struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;unique"`
	Description string    `json:"description"`
	Weight      float64   `json:"weight" gorm:"default:1"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Dish struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	RestaurantID uint    `json:"restaurant_id" gorm:"not null;index"`
	Name         string  `json:"name" gorm:"not null"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price" gorm:"not null"`

	// RatingCache is derived from the dish's review set and recomputed after
	// every review mutation. Not a source of truth.
	RatingCache float64 `json:"rating_cache" gorm:"default:0"`

	// Attributes defines which rating dimensions are presented for this dish.
	Attributes []Attribute `json:"attributes,omitempty" gorm:"many2many:dish_attributes;"`

	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Restaurant Restaurant `json:"restaurant,omitempty"`
	Reviews    []Review   `json:"reviews,omitempty"`
}

type CreateDishRequest struct {
	RestaurantID uint    `json:"restaurant_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	AttributeIDs []uint  `json:"attribute_ids"`
}

type UpdateDishRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	AttributeIDs *[]uint  `json:"attribute_ids,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

type CreateAttributeRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Weight      *float64 `json:"weight"`
}
