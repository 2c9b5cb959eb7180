package repository

import (
	"strings"

	"github.com/foodie-app/foodie-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RestaurantFilter narrows the restaurant listing. Distance sorting happens in
// the service layer because it depends on the caller's coordinates.
type RestaurantFilter struct {
	Cuisine    string
	PriceRange string
	MinRating  float64
	Search     string
	Page       int
	Limit      int
}

type RestaurantRepository interface {
	Create(restaurant *models.Restaurant) error
	Update(restaurant *models.Restaurant) error
	Delete(restaurantID uint) error
	FindByID(restaurantID uint) (*models.Restaurant, error)
	List(filter RestaurantFilter) ([]models.Restaurant, int64, error)
	UpdateStats(restaurantID uint, avgRating float64, reviewCount int64) error
	AddImage(image *models.Image) error
	FindImage(imageID uuid.UUID) (*models.Image, error)
	DeleteImage(imageID uuid.UUID) error
}

type restaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Create(restaurant *models.Restaurant) error {
	return r.db.Create(restaurant).Error
}

func (r *restaurantRepository) Update(restaurant *models.Restaurant) error {
	return r.db.Save(restaurant).Error
}

func (r *restaurantRepository) Delete(restaurantID uint) error {
	return r.db.Delete(&models.Restaurant{}, restaurantID).Error
}

func (r *restaurantRepository) FindByID(restaurantID uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.Preload("Images", "is_active = ?", true).
		Preload("Dishes", "is_active = ?", true).
		Preload("Dishes.Attributes").
		First(&restaurant, restaurantID).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) List(filter RestaurantFilter) ([]models.Restaurant, int64, error) {
	query := r.db.Model(&models.Restaurant{}).Where("is_active = ?", true)

	if filter.Cuisine != "" {
		query = query.Where("cuisine = ?", filter.Cuisine)
	}
	if filter.PriceRange != "" {
		query = query.Where("price_range = ?", filter.PriceRange)
	}
	if filter.MinRating > 0 {
		query = query.Where("avg_rating >= ?", filter.MinRating)
	}
	if filter.Search != "" {
		term := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var restaurants []models.Restaurant
	offset := (filter.Page - 1) * filter.Limit
	err := query.Preload("Images", "is_active = ?", true).
		Order("is_promoted DESC, avg_rating DESC").
		Limit(filter.Limit).
		Offset(offset).
		Find(&restaurants).Error
	if err != nil {
		return nil, 0, err
	}

	return restaurants, total, nil
}

func (r *restaurantRepository) UpdateStats(restaurantID uint, avgRating float64, reviewCount int64) error {
	return r.db.Model(&models.Restaurant{}).Where("id = ?", restaurantID).
		Updates(map[string]interface{}{
			"avg_rating":   avgRating,
			"review_count": reviewCount,
		}).Error
}

func (r *restaurantRepository) AddImage(image *models.Image) error {
	return r.db.Create(image).Error
}

func (r *restaurantRepository) FindImage(imageID uuid.UUID) (*models.Image, error) {
	var image models.Image
	err := r.db.First(&image, "id = ?", imageID).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *restaurantRepository) DeleteImage(imageID uuid.UUID) error {
	return r.db.Delete(&models.Image{}, "id = ?", imageID).Error
}
