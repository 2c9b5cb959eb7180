package services

import (
	"errors"

	"github.com/foodie-app/foodie-backend/internal/models"
	"github.com/foodie-app/foodie-backend/internal/rating"
	"github.com/foodie-app/foodie-backend/internal/repository"
	"gorm.io/gorm"
)

type AttributeService struct {
	attributeRepo repository.AttributeRepository
}

func NewAttributeService(attributeRepo repository.AttributeRepository) *AttributeService {
	return &AttributeService{attributeRepo: attributeRepo}
}

func (s *AttributeService) List() ([]models.Attribute, error) {
	return s.attributeRepo.List()
}

func (s *AttributeService) Create(req models.CreateAttributeRequest) (*models.Attribute, error) {
	weight := rating.DefaultWeight
	if req.Weight != nil {
		if *req.Weight < 0 {
			return nil, &ValidationError{Field: "weight", Message: "weight must be non-negative"}
		}
		weight = *req.Weight
	}

	attribute := models.Attribute{
		Name:        req.Name,
		Description: req.Description,
		Weight:      weight,
	}
	if err := s.attributeRepo.Create(&attribute); err != nil {
		return nil, err
	}
	return &attribute, nil
}

func (s *AttributeService) Update(attributeID uint, req models.CreateAttributeRequest) (*models.Attribute, error) {
	attribute, err := s.attributeRepo.FindByID(attributeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttributeNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		attribute.Name = req.Name
	}
	if req.Description != "" {
		attribute.Description = req.Description
	}
	if req.Weight != nil {
		if *req.Weight < 0 {
			return nil, &ValidationError{Field: "weight", Message: "weight must be non-negative"}
		}
		attribute.Weight = *req.Weight
	}

	if err := s.attributeRepo.Update(attribute); err != nil {
		return nil, err
	}
	return attribute, nil
}
