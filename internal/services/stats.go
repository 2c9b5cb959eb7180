package services

import (
	"github.com/foodie-app/foodie-backend/internal/cache"
	"github.com/foodie-app/foodie-backend/internal/rating"
	"github.com/foodie-app/foodie-backend/internal/repository"
	"github.com/foodie-app/foodie-backend/pkg/logger"
)

// StatsService recomputes the derived rating statistics: Dish.RatingCache and
// Restaurant.AvgRating/ReviewCount. Recomputation is a full scan of the relevant
// review set rather than an incremental update, so repeated runs cannot drift.
type StatsService struct {
	reviewRepo     repository.ReviewRepository
	dishRepo       repository.DishRepository
	restaurantRepo repository.RestaurantRepository
	statsCache     *cache.StatsCache
}

func NewStatsService(
	reviewRepo repository.ReviewRepository,
	dishRepo repository.DishRepository,
	restaurantRepo repository.RestaurantRepository,
	statsCache *cache.StatsCache,
) *StatsService {
	return &StatsService{
		reviewRepo:     reviewRepo,
		dishRepo:       dishRepo,
		restaurantRepo: restaurantRepo,
		statsCache:     statsCache,
	}
}

// ComputeDishRating averages the overall ratings of a dish's active reviews,
// rounded to one decimal. A dish without reviews scores 0.
func (s *StatsService) ComputeDishRating(dishID uint) (float64, error) {
	values, err := s.reviewRepo.ActiveRatingsByDish(dishID)
	if err != nil {
		return 0, err
	}
	return rating.AverageStored(values), nil
}

// ComputeRestaurantStats aggregates across all reviews of the restaurant's
// dishes. An unreviewed restaurant reports 0 / 0, never NaN.
func (s *StatsService) ComputeRestaurantStats(restaurantID uint) (float64, int64, error) {
	values, err := s.reviewRepo.ActiveRatingsByRestaurant(restaurantID)
	if err != nil {
		return 0, 0, err
	}
	return rating.AverageStored(values), int64(len(values)), nil
}

// RecomputeForDish refreshes the dish's rating cache and the owning
// restaurant's statistics, then drops the restaurant's cached stats entry.
// Called synchronously after every review mutation.
func (s *StatsService) RecomputeForDish(dishID uint) error {
	dish, err := s.dishRepo.FindByID(dishID)
	if err != nil {
		return err
	}

	dishRating, err := s.ComputeDishRating(dishID)
	if err != nil {
		return err
	}
	if err := s.dishRepo.UpdateRatingCache(dishID, dishRating); err != nil {
		return err
	}

	avgRating, reviewCount, err := s.ComputeRestaurantStats(dish.RestaurantID)
	if err != nil {
		return err
	}
	if err := s.restaurantRepo.UpdateStats(dish.RestaurantID, avgRating, reviewCount); err != nil {
		return err
	}

	if s.statsCache != nil {
		if err := s.statsCache.Invalidate(dish.RestaurantID); err != nil {
			logger.Warn("Failed to invalidate stats cache for restaurant ", dish.RestaurantID, ": ", err)
		}
	}

	return nil
}
