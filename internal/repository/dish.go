package repository

import (
	"github.com/foodie-app/foodie-backend/internal/models"
	"gorm.io/gorm"
)

type DishRepository interface {
	Create(dish *models.Dish) error
	Update(dish *models.Dish) error
	Delete(dishID uint) error
	FindByID(dishID uint) (*models.Dish, error)
	FindByRestaurant(restaurantID uint) ([]models.Dish, error)
	ReplaceAttributes(dish *models.Dish, attributes []models.Attribute) error
	UpdateRatingCache(dishID uint, value float64) error
}

type dishRepository struct {
	db *gorm.DB
}

func NewDishRepository(db *gorm.DB) DishRepository {
	return &dishRepository{db: db}
}

func (r *dishRepository) Create(dish *models.Dish) error {
	return r.db.Create(dish).Error
}

func (r *dishRepository) Update(dish *models.Dish) error {
	return r.db.Save(dish).Error
}

func (r *dishRepository) Delete(dishID uint) error {
	return r.db.Delete(&models.Dish{}, dishID).Error
}

func (r *dishRepository) FindByID(dishID uint) (*models.Dish, error) {
	var dish models.Dish
	err := r.db.Preload("Attributes").First(&dish, dishID).Error
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *dishRepository) FindByRestaurant(restaurantID uint) ([]models.Dish, error) {
	var dishes []models.Dish
	err := r.db.Where("restaurant_id = ? AND is_active = ?", restaurantID, true).
		Preload("Attributes").
		Order("category, name").
		Find(&dishes).Error
	if err != nil {
		return nil, err
	}
	return dishes, nil
}

func (r *dishRepository) ReplaceAttributes(dish *models.Dish, attributes []models.Attribute) error {
	return r.db.Model(dish).Association("Attributes").Replace(attributes)
}

func (r *dishRepository) UpdateRatingCache(dishID uint, value float64) error {
	return r.db.Model(&models.Dish{}).Where("id = ?", dishID).Update("rating_cache", value).Error
}
