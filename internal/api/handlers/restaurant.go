package handlers

import (
	"errors"

	"github.com/foodie-app/foodie-backend/internal/models"
	"github.com/foodie-app/foodie-backend/internal/services"
	"github.com/foodie-app/foodie-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RestaurantHandler struct {
	restaurantService *services.RestaurantService
}

func NewRestaurantHandler(restaurantService *services.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService}
}

func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	var filter services.RestaurantListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.SendValidationError(c, "Invalid query parameters")
		return
	}

	response, err := h.restaurantService.List(filter)
	if err != nil {
		utils.SendInternalError(c, "Failed to retrieve restaurants", err)
		return
	}

	utils.SendSuccess(c, "Restaurants retrieved successfully", response)
}

func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	restaurantID, err := parseIDParam(c, "restaurant_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid restaurant ID")
		return
	}

	restaurant, err := h.restaurantService.Get(restaurantID)
	if err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			utils.SendNotFound(c, "Restaurant not found")
			return
		}
		utils.SendInternalError(c, "Failed to retrieve restaurant", err)
		return
	}

	utils.SendSuccess(c, "Restaurant retrieved successfully", restaurant)
}

func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	var req models.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	restaurant, err := h.restaurantService.Create(req)
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			utils.SendValidationError(c, ve.Error())
			return
		}
		utils.SendInternalError(c, "Failed to create restaurant", err)
		return
	}

	utils.SendCreated(c, "Restaurant created successfully", restaurant)
}

func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	restaurantID, err := parseIDParam(c, "restaurant_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid restaurant ID")
		return
	}

	var req models.UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	restaurant, err := h.restaurantService.Update(restaurantID, req)
	if err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			utils.SendNotFound(c, "Restaurant not found")
			return
		}
		utils.SendInternalError(c, "Failed to update restaurant", err)
		return
	}

	utils.SendSuccess(c, "Restaurant updated successfully", restaurant)
}

func (h *RestaurantHandler) DeleteRestaurant(c *gin.Context) {
	restaurantID, err := parseIDParam(c, "restaurant_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid restaurant ID")
		return
	}

	if err := h.restaurantService.Delete(restaurantID); err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			utils.SendNotFound(c, "Restaurant not found")
			return
		}
		utils.SendInternalError(c, "Failed to delete restaurant", err)
		return
	}

	utils.SendSuccess(c, "Restaurant deleted successfully", nil)
}

func (h *RestaurantHandler) UploadImages(c *gin.Context) {
	restaurantID, err := parseIDParam(c, "restaurant_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid restaurant ID")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.SendValidationError(c, "Invalid multipart form")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.SendValidationError(c, "At least one image is required")
		return
	}

	images, err := h.restaurantService.UploadImages(restaurantID, files)
	if err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			utils.SendNotFound(c, "Restaurant not found")
			return
		}
		utils.SendInternalError(c, "Failed to upload images", err)
		return
	}

	utils.SendCreated(c, "Images uploaded successfully", images)
}

func (h *RestaurantHandler) DeleteImage(c *gin.Context) {
	imageID, err := uuid.Parse(c.Param("image_id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid image ID")
		return
	}

	if err := h.restaurantService.DeleteImage(imageID); err != nil {
		utils.SendInternalError(c, "Failed to delete image", err)
		return
	}

	utils.SendSuccess(c, "Image deleted successfully", nil)
}
