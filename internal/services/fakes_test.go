package services

import (
	"sort"
	"testing"

	"github.com/foodie-app/foodie-backend/internal/models"
	"github.com/foodie-app/foodie-backend/internal/repository"
	"github.com/foodie-app/foodie-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.Init()
	m.Run()
}

// In-memory repository fakes. They mirror the persistence contracts closely
// enough to drive the service layer without a database.

type fakeReviewRepo struct {
	nextID  uint
	reviews map[uint]models.Review
	dishes  *fakeDishRepo
}

func newFakeReviewRepo(dishes *fakeDishRepo) *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uint]models.Review), dishes: dishes}
}

func (f *fakeReviewRepo) CreateWithDetails(review *models.Review, details []models.ReviewDetail) error {
	f.nextID++
	review.ID = f.nextID
	for i := range details {
		details[i].ReviewID = review.ID
	}
	review.Details = details
	f.reviews[review.ID] = *review
	return nil
}

func (f *fakeReviewRepo) UpdateWithDetails(review *models.Review, details []models.ReviewDetail) error {
	for i := range details {
		details[i].ReviewID = review.ID
	}
	review.Details = details
	f.reviews[review.ID] = *review
	return nil
}

func (f *fakeReviewRepo) Delete(reviewID uint) error {
	if _, ok := f.reviews[reviewID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.reviews, reviewID)
	return nil
}

func (f *fakeReviewRepo) FindByID(reviewID uint) (*models.Review, error) {
	review, ok := f.reviews[reviewID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &review, nil
}

func (f *fakeReviewRepo) FindByUserAndDish(userID, dishID uint) (*models.Review, error) {
	for _, review := range f.reviews {
		if review.UserID == userID && review.DishID == dishID {
			r := review
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReviewRepo) FindByDish(dishID uint, page, pageSize int) ([]models.Review, int64, error) {
	var matched []models.Review
	for _, review := range f.reviews {
		if review.DishID == dishID && review.IsActive {
			matched = append(matched, review)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeReviewRepo) FindFlagged() ([]models.Review, error) {
	var flagged []models.Review
	for _, review := range f.reviews {
		if review.IsFlagged && review.IsActive {
			flagged = append(flagged, review)
		}
	}
	return flagged, nil
}

func (f *fakeReviewRepo) ActiveRatingsByDish(dishID uint) ([]float64, error) {
	var values []float64
	for _, review := range f.reviews {
		if review.DishID == dishID && review.IsActive {
			values = append(values, review.OverallRating)
		}
	}
	return values, nil
}

func (f *fakeReviewRepo) ActiveRatingsByRestaurant(restaurantID uint) ([]float64, error) {
	var values []float64
	for _, review := range f.reviews {
		dish, ok := f.dishes.dishes[review.DishID]
		if !ok || dish.RestaurantID != restaurantID {
			continue
		}
		if review.IsActive {
			values = append(values, review.OverallRating)
		}
	}
	return values, nil
}

func (f *fakeReviewRepo) Save(review *models.Review) error {
	if _, ok := f.reviews[review.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.reviews[review.ID] = *review
	return nil
}

type fakeDishRepo struct {
	nextID uint
	dishes map[uint]models.Dish
}

func newFakeDishRepo() *fakeDishRepo {
	return &fakeDishRepo{dishes: make(map[uint]models.Dish)}
}

func (f *fakeDishRepo) Create(dish *models.Dish) error {
	f.nextID++
	dish.ID = f.nextID
	f.dishes[dish.ID] = *dish
	return nil
}

func (f *fakeDishRepo) Update(dish *models.Dish) error {
	if _, ok := f.dishes[dish.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.dishes[dish.ID] = *dish
	return nil
}

func (f *fakeDishRepo) Delete(dishID uint) error {
	delete(f.dishes, dishID)
	return nil
}

func (f *fakeDishRepo) FindByID(dishID uint) (*models.Dish, error) {
	dish, ok := f.dishes[dishID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &dish, nil
}

func (f *fakeDishRepo) FindByRestaurant(restaurantID uint) ([]models.Dish, error) {
	var matched []models.Dish
	for _, dish := range f.dishes {
		if dish.RestaurantID == restaurantID {
			matched = append(matched, dish)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (f *fakeDishRepo) ReplaceAttributes(dish *models.Dish, attributes []models.Attribute) error {
	stored, ok := f.dishes[dish.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Attributes = attributes
	f.dishes[dish.ID] = stored
	dish.Attributes = attributes
	return nil
}

func (f *fakeDishRepo) UpdateRatingCache(dishID uint, value float64) error {
	dish, ok := f.dishes[dishID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	dish.RatingCache = value
	f.dishes[dishID] = dish
	return nil
}

type fakeRestaurantRepo struct {
	nextID      uint
	restaurants map[uint]models.Restaurant
}

func newFakeRestaurantRepo() *fakeRestaurantRepo {
	return &fakeRestaurantRepo{restaurants: make(map[uint]models.Restaurant)}
}

func (f *fakeRestaurantRepo) Create(restaurant *models.Restaurant) error {
	f.nextID++
	restaurant.ID = f.nextID
	f.restaurants[restaurant.ID] = *restaurant
	return nil
}

func (f *fakeRestaurantRepo) Update(restaurant *models.Restaurant) error {
	if _, ok := f.restaurants[restaurant.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.restaurants[restaurant.ID] = *restaurant
	return nil
}

func (f *fakeRestaurantRepo) Delete(restaurantID uint) error {
	delete(f.restaurants, restaurantID)
	return nil
}

func (f *fakeRestaurantRepo) FindByID(restaurantID uint) (*models.Restaurant, error) {
	restaurant, ok := f.restaurants[restaurantID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &restaurant, nil
}

func (f *fakeRestaurantRepo) List(filter repository.RestaurantFilter) ([]models.Restaurant, int64, error) {
	var matched []models.Restaurant
	for _, restaurant := range f.restaurants {
		if !restaurant.IsActive {
			continue
		}
		if filter.Cuisine != "" && restaurant.Cuisine != filter.Cuisine {
			continue
		}
		if filter.PriceRange != "" && restaurant.PriceRange != filter.PriceRange {
			continue
		}
		if restaurant.AvgRating < filter.MinRating {
			continue
		}
		matched = append(matched, restaurant)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].IsPromoted != matched[j].IsPromoted {
			return matched[i].IsPromoted
		}
		if matched[i].AvgRating != matched[j].AvgRating {
			return matched[i].AvgRating > matched[j].AvgRating
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeRestaurantRepo) UpdateStats(restaurantID uint, avgRating float64, reviewCount int64) error {
	restaurant, ok := f.restaurants[restaurantID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	restaurant.AvgRating = avgRating
	restaurant.ReviewCount = reviewCount
	f.restaurants[restaurantID] = restaurant
	return nil
}

func (f *fakeRestaurantRepo) AddImage(image *models.Image) error {
	image.ID = uuid.New()
	return nil
}

func (f *fakeRestaurantRepo) FindImage(imageID uuid.UUID) (*models.Image, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRestaurantRepo) DeleteImage(imageID uuid.UUID) error {
	return nil
}
