package services

import (
	"errors"

	"github.com/foodie-app/foodie-backend/internal/models"
	"github.com/foodie-app/foodie-backend/internal/repository"
	"gorm.io/gorm"
)

type DishService struct {
	dishRepo       repository.DishRepository
	restaurantRepo repository.RestaurantRepository
	attributeRepo  repository.AttributeRepository
}

func NewDishService(dishRepo repository.DishRepository, restaurantRepo repository.RestaurantRepository, attributeRepo repository.AttributeRepository) *DishService {
	return &DishService{
		dishRepo:       dishRepo,
		restaurantRepo: restaurantRepo,
		attributeRepo:  attributeRepo,
	}
}

func (s *DishService) Get(dishID uint) (*models.Dish, error) {
	dish, err := s.dishRepo.FindByID(dishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDishNotFound
		}
		return nil, err
	}
	return dish, nil
}

func (s *DishService) GetByRestaurant(restaurantID uint) ([]models.Dish, error) {
	if _, err := s.restaurantRepo.FindByID(restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return s.dishRepo.FindByRestaurant(restaurantID)
}

// Create registers a dish and binds its rateable attribute set.
func (s *DishService) Create(req models.CreateDishRequest) (*models.Dish, error) {
	if _, err := s.restaurantRepo.FindByID(req.RestaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	attributes, err := s.resolveAttributes(req.AttributeIDs)
	if err != nil {
		return nil, err
	}

	dish := models.Dish{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		Attributes:   attributes,
		IsActive:     true,
	}
	if err := s.dishRepo.Create(&dish); err != nil {
		return nil, err
	}
	return &dish, nil
}

func (s *DishService) Update(dishID uint, req models.UpdateDishRequest) (*models.Dish, error) {
	dish, err := s.dishRepo.FindByID(dishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDishNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		dish.Name = *req.Name
	}
	if req.Description != nil {
		dish.Description = *req.Description
	}
	if req.Category != nil {
		dish.Category = *req.Category
	}
	if req.Price != nil {
		dish.Price = *req.Price
	}
	if req.IsActive != nil {
		dish.IsActive = *req.IsActive
	}

	if req.AttributeIDs != nil {
		attributes, err := s.resolveAttributes(*req.AttributeIDs)
		if err != nil {
			return nil, err
		}
		if err := s.dishRepo.ReplaceAttributes(dish, attributes); err != nil {
			return nil, err
		}
		dish.Attributes = attributes
	}

	if err := s.dishRepo.Update(dish); err != nil {
		return nil, err
	}
	return dish, nil
}

func (s *DishService) Delete(dishID uint) error {
	if _, err := s.dishRepo.FindByID(dishID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDishNotFound
		}
		return err
	}
	return s.dishRepo.Delete(dishID)
}

func (s *DishService) resolveAttributes(attributeIDs []uint) ([]models.Attribute, error) {
	attributes, err := s.attributeRepo.FindByIDs(attributeIDs)
	if err != nil {
		return nil, err
	}
	if len(attributes) != len(attributeIDs) {
		return nil, ErrAttributeNotFound
	}
	return attributes, nil
}
