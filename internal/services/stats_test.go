package services

import (
	"testing"

	"github.com/foodie-app/foodie-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDishRatingHandlesLegacyTenScaleRows(t *testing.T) {
	env := newReviewTestEnv(t)

	// Rows written before the storage-scale migration carry 1-10 values.
	// A single out-of-range value flips the whole set to the legacy scale.
	env.reviews.reviews[100] = models.Review{ID: 100, DishID: env.dishID, OverallRating: 9, IsActive: true}
	env.reviews.reviews[101] = models.Review{ID: 101, DishID: env.dishID, OverallRating: 8, IsActive: true}

	value, err := env.stats.ComputeDishRating(env.dishID)
	require.NoError(t, err)
	assert.Equal(t, 4.3, value) // (4.5 + 4.0) / 2 = 4.25, rounded half-up
}

func TestComputeDishRatingEmptySet(t *testing.T) {
	env := newReviewTestEnv(t)

	value, err := env.stats.ComputeDishRating(env.dishID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, value)
}

func TestComputeRestaurantStatsCrossesDishes(t *testing.T) {
	env := newReviewTestEnv(t)

	second := models.Dish{RestaurantID: 1, Name: "Carbonara", Price: 14}
	require.NoError(t, env.dishes.Create(&second))

	env.reviews.reviews[100] = models.Review{ID: 100, DishID: env.dishID, OverallRating: 4.0, IsActive: true}
	env.reviews.reviews[101] = models.Review{ID: 101, DishID: second.ID, OverallRating: 3.0, IsActive: true}
	env.reviews.reviews[102] = models.Review{ID: 102, DishID: second.ID, OverallRating: 2.0, IsActive: false}

	avg, count, err := env.stats.ComputeRestaurantStats(1)
	require.NoError(t, err)
	assert.Equal(t, 3.5, avg)
	assert.Equal(t, int64(2), count)
}

func TestRecomputeForDishIsIdempotent(t *testing.T) {
	env := newReviewTestEnv(t)

	env.reviews.reviews[100] = models.Review{ID: 100, DishID: env.dishID, OverallRating: 3.5, IsActive: true}

	require.NoError(t, env.stats.RecomputeForDish(env.dishID))
	first, err := env.dishes.FindByID(env.dishID)
	require.NoError(t, err)

	// Running again over the same review set changes nothing.
	require.NoError(t, env.stats.RecomputeForDish(env.dishID))
	second, err := env.dishes.FindByID(env.dishID)
	require.NoError(t, err)

	assert.Equal(t, first.RatingCache, second.RatingCache)

	restaurant, err := env.restaurants.FindByID(first.RestaurantID)
	require.NoError(t, err)
	assert.Equal(t, 3.5, restaurant.AvgRating)
	assert.Equal(t, int64(1), restaurant.ReviewCount)
}

func TestRecomputeForDishPersistsBothLevels(t *testing.T) {
	env := newReviewTestEnv(t)

	env.reviews.reviews[100] = models.Review{ID: 100, DishID: env.dishID, OverallRating: 4.0, IsActive: true}

	require.NoError(t, env.stats.RecomputeForDish(env.dishID))

	dish, err := env.dishes.FindByID(env.dishID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, dish.RatingCache)

	restaurant, err := env.restaurants.FindByID(dish.RestaurantID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, restaurant.AvgRating)
	assert.Equal(t, int64(1), restaurant.ReviewCount)
}
