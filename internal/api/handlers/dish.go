package handlers

import (
	"errors"

	"github.com/foodie-app/foodie-backend/internal/models"
	"github.com/foodie-app/foodie-backend/internal/services"
	"github.com/foodie-app/foodie-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type DishHandler struct {
	dishService *services.DishService
}

func NewDishHandler(dishService *services.DishService) *DishHandler {
	return &DishHandler{dishService: dishService}
}

func (h *DishHandler) GetDish(c *gin.Context) {
	dishID, err := parseIDParam(c, "dish_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid dish ID")
		return
	}

	dish, err := h.dishService.Get(dishID)
	if err != nil {
		if errors.Is(err, services.ErrDishNotFound) {
			utils.SendNotFound(c, "Dish not found")
			return
		}
		utils.SendInternalError(c, "Failed to retrieve dish", err)
		return
	}

	utils.SendSuccess(c, "Dish retrieved successfully", dish)
}

func (h *DishHandler) GetRestaurantDishes(c *gin.Context) {
	restaurantID, err := parseIDParam(c, "restaurant_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid restaurant ID")
		return
	}

	dishes, err := h.dishService.GetByRestaurant(restaurantID)
	if err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			utils.SendNotFound(c, "Restaurant not found")
			return
		}
		utils.SendInternalError(c, "Failed to retrieve dishes", err)
		return
	}

	utils.SendSuccess(c, "Dishes retrieved successfully", dishes)
}

func (h *DishHandler) CreateDish(c *gin.Context) {
	var req models.CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	dish, err := h.dishService.Create(req)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.Is(err, services.ErrRestaurantNotFound):
			utils.SendNotFound(c, "Restaurant not found")
		case errors.Is(err, services.ErrAttributeNotFound):
			utils.SendValidationError(c, "One or more attributes do not exist")
		case errors.As(err, &ve):
			utils.SendValidationError(c, ve.Error())
		default:
			utils.SendInternalError(c, "Failed to create dish", err)
		}
		return
	}

	utils.SendCreated(c, "Dish created successfully", dish)
}

func (h *DishHandler) UpdateDish(c *gin.Context) {
	dishID, err := parseIDParam(c, "dish_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid dish ID")
		return
	}

	var req models.UpdateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	dish, err := h.dishService.Update(dishID, req)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.Is(err, services.ErrDishNotFound):
			utils.SendNotFound(c, "Dish not found")
		case errors.Is(err, services.ErrAttributeNotFound):
			utils.SendValidationError(c, "One or more attributes do not exist")
		case errors.As(err, &ve):
			utils.SendValidationError(c, ve.Error())
		default:
			utils.SendInternalError(c, "Failed to update dish", err)
		}
		return
	}

	utils.SendSuccess(c, "Dish updated successfully", dish)
}

func (h *DishHandler) DeleteDish(c *gin.Context) {
	dishID, err := parseIDParam(c, "dish_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid dish ID")
		return
	}

	if err := h.dishService.Delete(dishID); err != nil {
		if errors.Is(err, services.ErrDishNotFound) {
			utils.SendNotFound(c, "Dish not found")
			return
		}
		utils.SendInternalError(c, "Failed to delete dish", err)
		return
	}

	utils.SendSuccess(c, "Dish deleted successfully", nil)
}
