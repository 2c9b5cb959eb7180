package repository

import (
	"github.com/foodie-app/foodie-backend/internal/models"
	"gorm.io/gorm"
)

type AttributeRepository interface {
	Create(attribute *models.Attribute) error
	Update(attribute *models.Attribute) error
	FindByID(attributeID uint) (*models.Attribute, error)
	FindByIDs(attributeIDs []uint) ([]models.Attribute, error)
	List() ([]models.Attribute, error)
}

type attributeRepository struct {
	db *gorm.DB
}

func NewAttributeRepository(db *gorm.DB) AttributeRepository {
	return &attributeRepository{db: db}
}

func (r *attributeRepository) Create(attribute *models.Attribute) error {
	return r.db.Create(attribute).Error
}

func (r *attributeRepository) Update(attribute *models.Attribute) error {
	return r.db.Save(attribute).Error
}

func (r *attributeRepository) FindByID(attributeID uint) (*models.Attribute, error) {
	var attribute models.Attribute
	err := r.db.First(&attribute, attributeID).Error
	if err != nil {
		return nil, err
	}
	return &attribute, nil
}

func (r *attributeRepository) FindByIDs(attributeIDs []uint) ([]models.Attribute, error) {
	var attributes []models.Attribute
	if len(attributeIDs) == 0 {
		return attributes, nil
	}
	err := r.db.Where("id IN ?", attributeIDs).Find(&attributes).Error
	if err != nil {
		return nil, err
	}
	return attributes, nil
}

func (r *attributeRepository) List() ([]models.Attribute, error) {
	var attributes []models.Attribute
	err := r.db.Order("id").Find(&attributes).Error
	if err != nil {
		return nil, err
	}
	return attributes, nil
}
