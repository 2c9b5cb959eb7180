package handlers

import (
	"errors"

	"github.com/foodie-app/foodie-backend/internal/models"
	"github.com/foodie-app/foodie-backend/internal/services"
	"github.com/foodie-app/foodie-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type AttributeHandler struct {
	attributeService *services.AttributeService
}

func NewAttributeHandler(attributeService *services.AttributeService) *AttributeHandler {
	return &AttributeHandler{attributeService: attributeService}
}

func (h *AttributeHandler) ListAttributes(c *gin.Context) {
	attributes, err := h.attributeService.List()
	if err != nil {
		utils.SendInternalError(c, "Failed to retrieve attributes", err)
		return
	}

	utils.SendSuccess(c, "Attributes retrieved successfully", attributes)
}

func (h *AttributeHandler) CreateAttribute(c *gin.Context) {
	var req models.CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	attribute, err := h.attributeService.Create(req)
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			utils.SendValidationError(c, ve.Error())
			return
		}
		utils.SendInternalError(c, "Failed to create attribute", err)
		return
	}

	utils.SendCreated(c, "Attribute created successfully", attribute)
}

func (h *AttributeHandler) UpdateAttribute(c *gin.Context) {
	attributeID, err := parseIDParam(c, "attribute_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid attribute ID")
		return
	}

	var req models.CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	attribute, err := h.attributeService.Update(attributeID, req)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.Is(err, services.ErrAttributeNotFound):
			utils.SendNotFound(c, "Attribute not found")
		case errors.As(err, &ve):
			utils.SendValidationError(c, ve.Error())
		default:
			utils.SendInternalError(c, "Failed to update attribute", err)
		}
		return
	}

	utils.SendSuccess(c, "Attribute updated successfully", attribute)
}
