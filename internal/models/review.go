package models

import (
	"time"
)

// Review holds one user's opinion of one dish. OverallRating is derived from the
// per-attribute details at write time (0.5-5.0 storage scale) and is never
// settable independently. The composite unique index backs the duplicate guard
// so a racing second insert for the same (user, dish) pair loses at the database.
type Review struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	UserID        uint    `json:"user_id" gorm:"not null;uniqueIndex:idx_reviews_user_dish"`
	DishID        uint    `json:"dish_id" gorm:"not null;uniqueIndex:idx_reviews_user_dish"`
	Comment       string  `json:"comment"`
	OverallRating float64 `json:"overall_rating" gorm:"check:overall_rating >= 0 AND overall_rating <= 5"`

	IsFlagged bool      `json:"is_flagged" gorm:"default:false"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User    User           `json:"user,omitempty"`
	Dish    Dish           `json:"dish,omitempty"`
	Details []ReviewDetail `json:"details,omitempty" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
}

// ReviewDetail is one per-attribute sub-rating of a review. Rating is stored
// canonically on the 1-10 slider scale; conversion to the 0.5-5.0 storage scale
// happens only when deriving Review.OverallRating.
type ReviewDetail struct {
	ID          uint `json:"id" gorm:"primaryKey"`
	ReviewID    uint `json:"review_id" gorm:"not null;uniqueIndex:idx_details_review_attribute"`
	AttributeID uint `json:"attribute_id" gorm:"not null;uniqueIndex:idx_details_review_attribute"`
	Rating      int  `json:"rating" gorm:"check:rating >= 1 AND rating <= 10"`

	// Relations
	Attribute Attribute `json:"attribute,omitempty"`
}

func (ReviewDetail) TableName() string {
	return "review_details"
}
