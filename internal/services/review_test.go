package services

import (
	"testing"

	"github.com/foodie-app/foodie-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewTestEnv struct {
	service     *ReviewService
	stats       *StatsService
	reviews     *fakeReviewRepo
	dishes      *fakeDishRepo
	restaurants *fakeRestaurantRepo
	dishID      uint
}

func newReviewTestEnv(t *testing.T) *reviewTestEnv {
	t.Helper()

	restaurants := newFakeRestaurantRepo()
	dishes := newFakeDishRepo()
	reviews := newFakeReviewRepo(dishes)

	restaurant := models.Restaurant{Name: "Trattoria", Cuisine: "Italian", IsActive: true}
	require.NoError(t, restaurants.Create(&restaurant))

	dish := models.Dish{
		RestaurantID: restaurant.ID,
		Name:         "Margherita",
		Category:     "Pizza",
		Price:        12.5,
		Attributes: []models.Attribute{
			{ID: 1, Name: "Taste", Weight: 1},
			{ID: 2, Name: "Freshness", Weight: 1},
		},
	}
	require.NoError(t, dishes.Create(&dish))

	stats := NewStatsService(reviews, dishes, restaurants, nil)
	service := NewReviewService(reviews, dishes, stats, nil, "")

	return &reviewTestEnv{
		service:     service,
		stats:       stats,
		reviews:     reviews,
		dishes:      dishes,
		restaurants: restaurants,
		dishID:      dish.ID,
	}
}

func TestCreateReviewComputesWeightedOverallRating(t *testing.T) {
	env := newReviewTestEnv(t)

	review, err := env.service.CreateReview(7, CreateReviewRequest{
		DishID:  env.dishID,
		Comment: "Great crust",
		AttributeRatings: []AttributeRatingInput{
			{AttributeID: 1, Rating: 10},
			{AttributeID: 2, Rating: 1},
		},
	})
	require.NoError(t, err)

	// (10 + 1) / 2 = 5.5 on the slider scale, 2.75 stored, 2.8 after rounding.
	assert.Equal(t, 2.8, review.OverallRating)
	assert.Equal(t, 5.6, review.DisplayRating)
	assert.Len(t, review.Details, 2)
}

func TestCreateReviewRespectsAttributeWeights(t *testing.T) {
	env := newReviewTestEnv(t)
	require.NoError(t, env.dishes.ReplaceAttributes(&models.Dish{ID: env.dishID}, []models.Attribute{
		{ID: 1, Name: "Taste", Weight: 1},
		{ID: 2, Name: "Freshness", Weight: 3},
	}))

	review, err := env.service.CreateReview(7, CreateReviewRequest{
		DishID: env.dishID,
		AttributeRatings: []AttributeRatingInput{
			{AttributeID: 1, Rating: 10},
			{AttributeID: 2, Rating: 2},
		},
	})
	require.NoError(t, err)

	// (10*1 + 2*3) / 4 = 4.0 on the slider scale, 2.0 stored.
	assert.Equal(t, 2.0, review.OverallRating)
}

func TestCreateReviewClampsSliderValues(t *testing.T) {
	env := newReviewTestEnv(t)

	review, err := env.service.CreateReview(7, CreateReviewRequest{
		DishID: env.dishID,
		AttributeRatings: []AttributeRatingInput{
			{AttributeID: 1, Rating: 14},
			{AttributeID: 2, Rating: -3},
		},
	})
	require.NoError(t, err)

	// Clamped to 10 and 1 before weighting.
	assert.Equal(t, 2.8, review.OverallRating)
	for _, d := range review.Details {
		assert.GreaterOrEqual(t, d.Rating, 1)
		assert.LessOrEqual(t, d.Rating, 10)
	}
}

func TestCreateReviewRejectsSecondReviewForSameDish(t *testing.T) {
	env := newReviewTestEnv(t)

	first, err := env.service.CreateReview(7, CreateReviewRequest{
		DishID:           env.dishID,
		AttributeRatings: []AttributeRatingInput{{AttributeID: 1, Rating: 8}},
	})
	require.NoError(t, err)

	_, err = env.service.CreateReview(7, CreateReviewRequest{
		DishID:           env.dishID,
		AttributeRatings: []AttributeRatingInput{{AttributeID: 1, Rating: 5}},
	})

	var dup *DuplicateReviewError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, first.ID, dup.ExistingReviewID)

	// A different user may still review the dish.
	_, err = env.service.CreateReview(8, CreateReviewRequest{
		DishID:           env.dishID,
		AttributeRatings: []AttributeRatingInput{{AttributeID: 1, Rating: 5}},
	})
	assert.NoError(t, err)
}

func TestCreateReviewRejectsUnrateableAttribute(t *testing.T) {
	env := newReviewTestEnv(t)

	_, err := env.service.CreateReview(7, CreateReviewRequest{
		DishID:           env.dishID,
		AttributeRatings: []AttributeRatingInput{{AttributeID: 99, Rating: 8}},
	})

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestCreateReviewUnknownDish(t *testing.T) {
	env := newReviewTestEnv(t)

	_, err := env.service.CreateReview(7, CreateReviewRequest{
		DishID:           999,
		AttributeRatings: []AttributeRatingInput{{AttributeID: 1, Rating: 8}},
	})
	assert.ErrorIs(t, err, ErrDishNotFound)
}

func TestCreateReviewRecomputesDerivedStats(t *testing.T) {
	env := newReviewTestEnv(t)

	_, err := env.service.CreateReview(7, CreateReviewRequest{
		DishID: env.dishID,
		AttributeRatings: []AttributeRatingInput{
			{AttributeID: 1, Rating: 10},
			{AttributeID: 2, Rating: 1},
		},
	})
	require.NoError(t, err)

	dish, err := env.dishes.FindByID(env.dishID)
	require.NoError(t, err)
	assert.Equal(t, 2.8, dish.RatingCache)

	restaurant, err := env.restaurants.FindByID(dish.RestaurantID)
	require.NoError(t, err)
	assert.Equal(t, 2.8, restaurant.AvgRating)
	assert.Equal(t, int64(1), restaurant.ReviewCount)
}

func TestUpdateReviewOwnerOnly(t *testing.T) {
	env := newReviewTestEnv(t)

	created, err := env.service.CreateReview(7, CreateReviewRequest{
		DishID:           env.dishID,
		AttributeRatings: []AttributeRatingInput{{AttributeID: 1, Rating: 8}},
	})
	require.NoError(t, err)

	_, err = env.service.UpdateReview(8, created.ID, UpdateReviewRequest{
		AttributeRatings: []AttributeRatingInput{{AttributeID: 1, Rating: 2}},
	})
	assert.ErrorIs(t, err, ErrNotReviewOwner)
}

func TestUpdateReviewReplacesDetailsAndRecomputes(t *testing.T) {
	env := newReviewTestEnv(t)

	created, err := env.service.CreateReview(7, CreateReviewRequest{
		DishID:           env.dishID,
		AttributeRatings: []AttributeRatingInput{{AttributeID: 1, Rating: 8}},
	})
	require.NoError(t, err)
	assert.Equal(t, 4.0, created.OverallRating)

	updated, err := env.service.UpdateReview(7, created.ID, UpdateReviewRequest{
		Comment:          "Changed my mind",
		AttributeRatings: []AttributeRatingInput{{AttributeID: 1, Rating: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, updated.OverallRating)
	assert.Len(t, updated.Details, 1)

	dish, err := env.dishes.FindByID(env.dishID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, dish.RatingCache)
}

func TestDeleteReviewRecomputesToZero(t *testing.T) {
	env := newReviewTestEnv(t)

	created, err := env.service.CreateReview(7, CreateReviewRequest{
		DishID:           env.dishID,
		AttributeRatings: []AttributeRatingInput{{AttributeID: 1, Rating: 8}},
	})
	require.NoError(t, err)

	require.NoError(t, env.service.DeleteReview(7, created.ID))

	dish, err := env.dishes.FindByID(env.dishID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, dish.RatingCache)

	restaurant, err := env.restaurants.FindByID(dish.RestaurantID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, restaurant.AvgRating)
	assert.Equal(t, int64(0), restaurant.ReviewCount)
}

func TestDeleteReviewOwnerOnly(t *testing.T) {
	env := newReviewTestEnv(t)

	created, err := env.service.CreateReview(7, CreateReviewRequest{
		DishID:           env.dishID,
		AttributeRatings: []AttributeRatingInput{{AttributeID: 1, Rating: 8}},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, env.service.DeleteReview(8, created.ID), ErrNotReviewOwner)
}

func TestModerateReviewRemoveDropsFromAggregates(t *testing.T) {
	env := newReviewTestEnv(t)

	kept, err := env.service.CreateReview(7, CreateReviewRequest{
		DishID:           env.dishID,
		AttributeRatings: []AttributeRatingInput{{AttributeID: 1, Rating: 10}},
	})
	require.NoError(t, err)

	removed, err := env.service.CreateReview(8, CreateReviewRequest{
		DishID:           env.dishID,
		AttributeRatings: []AttributeRatingInput{{AttributeID: 1, Rating: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, env.service.FlagReview(removed.ID))
	require.NoError(t, env.service.ModerateReview(removed.ID, "remove"))

	dish, err := env.dishes.FindByID(env.dishID)
	require.NoError(t, err)
	assert.Equal(t, kept.OverallRating, dish.RatingCache)

	page, err := env.service.GetDishReviews(env.dishID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestModerateReviewApproveUnflags(t *testing.T) {
	env := newReviewTestEnv(t)

	created, err := env.service.CreateReview(7, CreateReviewRequest{
		DishID:           env.dishID,
		AttributeRatings: []AttributeRatingInput{{AttributeID: 1, Rating: 6}},
	})
	require.NoError(t, err)

	require.NoError(t, env.service.FlagReview(created.ID))
	flagged, err := env.service.GetFlaggedReviews()
	require.NoError(t, err)
	require.Len(t, flagged, 1)

	require.NoError(t, env.service.ModerateReview(created.ID, "approve"))
	flagged, err = env.service.GetFlaggedReviews()
	require.NoError(t, err)
	assert.Empty(t, flagged)
}

func TestModerateReviewRejectsUnknownAction(t *testing.T) {
	env := newReviewTestEnv(t)

	created, err := env.service.CreateReview(7, CreateReviewRequest{
		DishID:           env.dishID,
		AttributeRatings: []AttributeRatingInput{{AttributeID: 1, Rating: 6}},
	})
	require.NoError(t, err)

	var ve *ValidationError
	assert.ErrorAs(t, env.service.ModerateReview(created.ID, "escalate"), &ve)
}

func TestGetDishReviewsPaginates(t *testing.T) {
	env := newReviewTestEnv(t)

	for user := uint(1); user <= 5; user++ {
		_, err := env.service.CreateReview(user, CreateReviewRequest{
			DishID:           env.dishID,
			AttributeRatings: []AttributeRatingInput{{AttributeID: 1, Rating: 7}},
		})
		require.NoError(t, err)
	}

	page, err := env.service.GetDishReviews(env.dishID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Len(t, page.Reviews, 2)

	last, err := env.service.GetDishReviews(env.dishID, 3, 2)
	require.NoError(t, err)
	assert.Len(t, last.Reviews, 1)
}
