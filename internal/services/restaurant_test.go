package services

import (
	"testing"

	"github.com/foodie-app/foodie-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func seedRestaurants(t *testing.T) *fakeRestaurantRepo {
	t.Helper()
	repo := newFakeRestaurantRepo()

	fixtures := []models.Restaurant{
		{Name: "Near Bistro", Cuisine: "French", PriceRange: "$$", AvgRating: 3.0, Lat: ptr(52.52), Lng: ptr(13.40), IsActive: true},
		{Name: "Far Diner", Cuisine: "American", PriceRange: "$", AvgRating: 4.5, Lat: ptr(48.85), Lng: ptr(2.35), IsActive: true},
		{Name: "No Location", Cuisine: "French", PriceRange: "$$$", AvgRating: 4.0, IsActive: true},
		{Name: "Closed Doors", Cuisine: "French", PriceRange: "$$", AvgRating: 5.0, IsActive: false},
	}
	for i := range fixtures {
		require.NoError(t, repo.Create(&fixtures[i]))
	}
	return repo
}

func TestListRestaurantsSortsByDistanceWhenCoordinatesGiven(t *testing.T) {
	service := NewRestaurantService(seedRestaurants(t), nil, nil)

	// Caller is in Berlin, so Near Bistro should come first and the
	// location-less restaurant last.
	resp, err := service.List(RestaurantListFilter{Lat: ptr(52.50), Lng: ptr(13.40)})
	require.NoError(t, err)
	require.Len(t, resp.Restaurants, 3)

	assert.Equal(t, "Near Bistro", resp.Restaurants[0].Name)
	assert.Equal(t, "Far Diner", resp.Restaurants[1].Name)
	assert.Equal(t, "No Location", resp.Restaurants[2].Name)

	require.NotNil(t, resp.Restaurants[0].DistanceKm)
	require.NotNil(t, resp.Restaurants[1].DistanceKm)
	assert.Less(t, *resp.Restaurants[0].DistanceKm, *resp.Restaurants[1].DistanceKm)
	assert.Nil(t, resp.Restaurants[2].DistanceKm)
}

func TestListRestaurantsFiltersByCuisineAndRating(t *testing.T) {
	service := NewRestaurantService(seedRestaurants(t), nil, nil)

	resp, err := service.List(RestaurantListFilter{Cuisine: "French", MinRating: 3.5})
	require.NoError(t, err)
	require.Len(t, resp.Restaurants, 1)
	assert.Equal(t, "No Location", resp.Restaurants[0].Name)
}

func TestListRestaurantsExcludesInactive(t *testing.T) {
	service := NewRestaurantService(seedRestaurants(t), nil, nil)

	resp, err := service.List(RestaurantListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	for _, r := range resp.Restaurants {
		assert.NotEqual(t, "Closed Doors", r.Name)
	}
}

func TestListRestaurantsNormalizesPagination(t *testing.T) {
	service := NewRestaurantService(seedRestaurants(t), nil, nil)

	resp, err := service.List(RestaurantListFilter{Page: -2, Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, DefaultPageSize, resp.Limit)
}

func TestGetRestaurantNotFound(t *testing.T) {
	service := NewRestaurantService(newFakeRestaurantRepo(), nil, nil)

	_, err := service.Get(42)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestUpdateRestaurantPartialFields(t *testing.T) {
	repo := seedRestaurants(t)
	service := NewRestaurantService(repo, nil, nil)

	newName := "Renamed Bistro"
	promoted := true
	updated, err := service.Update(1, models.UpdateRestaurantRequest{
		Name:       &newName,
		IsPromoted: &promoted,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed Bistro", updated.Name)
	assert.True(t, updated.IsPromoted)
	// Untouched fields survive the partial update.
	assert.Equal(t, "French", updated.Cuisine)
	assert.Equal(t, "$$", updated.PriceRange)
}

func TestDeleteRestaurantNotFound(t *testing.T) {
	service := NewRestaurantService(newFakeRestaurantRepo(), nil, nil)
	assert.ErrorIs(t, service.Delete(42), ErrRestaurantNotFound)
}
