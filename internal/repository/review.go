package repository

import (
	"errors"

	"github.com/foodie-app/foodie-backend/internal/models"
	"gorm.io/gorm"
)

var ErrNotFound = gorm.ErrRecordNotFound

// ReviewRepository persists reviews together with their per-attribute details.
// Create/Update/Delete run as single transactions so a review can never be left
// with a partial attribute set.
type ReviewRepository interface {
	CreateWithDetails(review *models.Review, details []models.ReviewDetail) error
	UpdateWithDetails(review *models.Review, details []models.ReviewDetail) error
	Delete(reviewID uint) error
	FindByID(reviewID uint) (*models.Review, error)
	FindByUserAndDish(userID, dishID uint) (*models.Review, error)
	FindByDish(dishID uint, page, pageSize int) ([]models.Review, int64, error)
	FindFlagged() ([]models.Review, error)
	ActiveRatingsByDish(dishID uint) ([]float64, error)
	ActiveRatingsByRestaurant(restaurantID uint) ([]float64, error)
	Save(review *models.Review) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) CreateWithDetails(review *models.Review, details []models.ReviewDetail) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		for i := range details {
			details[i].ReviewID = review.ID
		}
		if len(details) > 0 {
			if err := tx.Create(&details).Error; err != nil {
				return err
			}
		}
		review.Details = details
		return nil
	})
}

func (r *reviewRepository) UpdateWithDetails(review *models.Review, details []models.ReviewDetail) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(review).Error; err != nil {
			return err
		}
		if err := tx.Where("review_id = ?", review.ID).Delete(&models.ReviewDetail{}).Error; err != nil {
			return err
		}
		for i := range details {
			details[i].ID = 0
			details[i].ReviewID = review.ID
		}
		if len(details) > 0 {
			if err := tx.Create(&details).Error; err != nil {
				return err
			}
		}
		review.Details = details
		return nil
	})
}

func (r *reviewRepository) Delete(reviewID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", reviewID).Delete(&models.ReviewDetail{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Review{}, reviewID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("review not found")
		}
		return nil
	})
}

func (r *reviewRepository) FindByID(reviewID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("User").Preload("Details.Attribute").First(&review, reviewID).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByUserAndDish(userID, dishID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("user_id = ? AND dish_id = ?", userID, dishID).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByDish(dishID uint, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	query := r.db.Model(&models.Review{}).Where("dish_id = ? AND is_active = ?", dishID, true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Where("dish_id = ? AND is_active = ?", dishID, true).
		Preload("User").
		Preload("Details.Attribute").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *reviewRepository) FindFlagged() ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("User").Preload("Dish").
		Where("is_flagged = ? AND is_active = ?", true, true).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ActiveRatingsByDish(dishID uint) ([]float64, error) {
	var values []float64
	err := r.db.Model(&models.Review{}).
		Where("dish_id = ? AND is_active = ?", dishID, true).
		Pluck("overall_rating", &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r *reviewRepository) ActiveRatingsByRestaurant(restaurantID uint) ([]float64, error) {
	var values []float64
	err := r.db.Model(&models.Review{}).
		Joins("JOIN dishes ON dishes.id = reviews.dish_id").
		Where("dishes.restaurant_id = ? AND reviews.is_active = ?", restaurantID, true).
		Pluck("reviews.overall_rating", &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r *reviewRepository) Save(review *models.Review) error {
	return r.db.Save(review).Error
}
