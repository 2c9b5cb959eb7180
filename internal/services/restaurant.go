package services

import (
	"errors"
	"math"
	"mime/multipart"
	"sort"

	"github.com/foodie-app/foodie-backend/internal/cache"
	"github.com/foodie-app/foodie-backend/internal/models"
	"github.com/foodie-app/foodie-backend/internal/repository"
	"github.com/foodie-app/foodie-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	earthRadiusKm = 6371.0
)

type RestaurantService struct {
	restaurantRepo repository.RestaurantRepository
	statsCache     *cache.StatsCache
	s3Service      *S3Service
}

func NewRestaurantService(restaurantRepo repository.RestaurantRepository, statsCache *cache.StatsCache, s3Service *S3Service) *RestaurantService {
	return &RestaurantService{
		restaurantRepo: restaurantRepo,
		statsCache:     statsCache,
		s3Service:      s3Service,
	}
}

type RestaurantListFilter struct {
	Cuisine    string   `form:"cuisine"`
	PriceRange string   `form:"price_range"`
	MinRating  float64  `form:"min_rating"`
	Search     string   `form:"search"`
	Lat        *float64 `form:"lat"`
	Lng        *float64 `form:"lng"`
	Page       int      `form:"page"`
	Limit      int      `form:"limit"`
}

type RestaurantListItem struct {
	models.Restaurant
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

type RestaurantListResponse struct {
	Restaurants []RestaurantListItem `json:"restaurants"`
	Total       int64                `json:"total"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
}

// List returns filtered restaurants. When the caller supplies coordinates, the
// page is annotated with distances and re-sorted nearest first.
func (s *RestaurantService) List(filter RestaurantListFilter) (*RestaurantListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > MaxPageSize {
		filter.Limit = DefaultPageSize
	}

	restaurants, total, err := s.restaurantRepo.List(repository.RestaurantFilter{
		Cuisine:    filter.Cuisine,
		PriceRange: filter.PriceRange,
		MinRating:  filter.MinRating,
		Search:     filter.Search,
		Page:       filter.Page,
		Limit:      filter.Limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]RestaurantListItem, 0, len(restaurants))
	for i := range restaurants {
		item := RestaurantListItem{Restaurant: restaurants[i]}
		if filter.Lat != nil && filter.Lng != nil && restaurants[i].Lat != nil && restaurants[i].Lng != nil {
			d := haversineKm(*filter.Lat, *filter.Lng, *restaurants[i].Lat, *restaurants[i].Lng)
			item.DistanceKm = &d
		}
		items = append(items, item)
	}

	if filter.Lat != nil && filter.Lng != nil {
		sort.SliceStable(items, func(i, j int) bool {
			di, dj := items[i].DistanceKm, items[j].DistanceKm
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			return *di < *dj
		})
	}

	return &RestaurantListResponse{
		Restaurants: items,
		Total:       total,
		Page:        filter.Page,
		Limit:       filter.Limit,
	}, nil
}

func (s *RestaurantService) Get(restaurantID uint) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindByID(restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	// Prefer cached stats when warm; the DB columns lag only if a recompute
	// failed after a review mutation.
	if stats, ok, err := s.statsCache.Get(restaurantID); err == nil && ok {
		restaurant.AvgRating = stats.AvgRating
		restaurant.ReviewCount = stats.ReviewCount
	} else if err == nil && !ok {
		if err := s.statsCache.Set(restaurantID, cache.RestaurantStats{
			AvgRating:   restaurant.AvgRating,
			ReviewCount: restaurant.ReviewCount,
		}); err != nil {
			logger.Warn("Failed to warm stats cache for restaurant ", restaurantID, ": ", err)
		}
	}

	return restaurant, nil
}

func (s *RestaurantService) Create(req models.CreateRestaurantRequest) (*models.Restaurant, error) {
	restaurant := models.Restaurant{
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		Cuisine:      req.Cuisine,
		PriceRange:   req.PriceRange,
		DeliveryTime: req.DeliveryTime,
		Lat:          req.Lat,
		Lng:          req.Lng,
		IsPromoted:   req.IsPromoted,
		IsActive:     true,
	}
	if err := s.restaurantRepo.Create(&restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (s *RestaurantService) Update(restaurantID uint, req models.UpdateRestaurantRequest) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindByID(restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.Description != nil {
		restaurant.Description = *req.Description
	}
	if req.Address != nil {
		restaurant.Address = *req.Address
	}
	if req.Cuisine != nil {
		restaurant.Cuisine = *req.Cuisine
	}
	if req.PriceRange != nil {
		restaurant.PriceRange = *req.PriceRange
	}
	if req.DeliveryTime != nil {
		restaurant.DeliveryTime = *req.DeliveryTime
	}
	if req.Lat != nil {
		restaurant.Lat = req.Lat
	}
	if req.Lng != nil {
		restaurant.Lng = req.Lng
	}
	if req.IsPromoted != nil {
		restaurant.IsPromoted = *req.IsPromoted
	}
	if req.IsActive != nil {
		restaurant.IsActive = *req.IsActive
	}

	if err := s.restaurantRepo.Update(restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (s *RestaurantService) Delete(restaurantID uint) error {
	if _, err := s.restaurantRepo.FindByID(restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRestaurantNotFound
		}
		return err
	}
	return s.restaurantRepo.Delete(restaurantID)
}

// UploadImages pushes restaurant photos to S3 and records their metadata.
func (s *RestaurantService) UploadImages(restaurantID uint, files []*multipart.FileHeader) ([]models.Image, error) {
	if _, err := s.restaurantRepo.FindByID(restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	results, err := s.s3Service.UploadMultipleImages(files)
	if err != nil {
		return nil, err
	}

	images := make([]models.Image, 0, len(results))
	for _, result := range results {
		image := models.Image{
			RestaurantID: restaurantID,
			FileName:     result.FileName,
			S3Key:        result.Key,
			S3URL:        result.URL,
			ContentType:  result.ContentType,
			Size:         result.Size,
			IsActive:     true,
		}
		if err := s.restaurantRepo.AddImage(&image); err != nil {
			// Keep S3 tidy if the metadata row fails.
			if delErr := s.s3Service.DeleteImage(result.Key); delErr != nil {
				logger.Warn("Failed to delete orphaned S3 object ", result.Key, ": ", delErr)
			}
			return nil, err
		}
		images = append(images, image)
	}

	return images, nil
}

func (s *RestaurantService) DeleteImage(imageID uuid.UUID) error {
	image, err := s.restaurantRepo.FindImage(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("image not found")
		}
		return err
	}

	if err := s.s3Service.DeleteImage(image.S3Key); err != nil {
		return err
	}
	return s.restaurantRepo.DeleteImage(imageID)
}

// haversineKm is the great-circle distance between two coordinates.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
