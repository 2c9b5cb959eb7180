package handlers

import (
	"errors"
	"strconv"

	"github.com/foodie-app/foodie-backend/internal/services"
	"github.com/foodie-app/foodie-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	review, err := h.reviewService.CreateReview(userID, req)
	if err != nil {
		var dup *services.DuplicateReviewError
		var ve *services.ValidationError
		switch {
		case errors.As(err, &dup):
			utils.SendConflict(c, "You have already reviewed this dish", gin.H{
				"existing_review_id": dup.ExistingReviewID,
			})
		case errors.As(err, &ve):
			utils.SendValidationError(c, ve.Error())
		case errors.Is(err, services.ErrDishNotFound):
			utils.SendNotFound(c, "Dish not found")
		default:
			utils.SendInternalError(c, "Failed to create review", err)
		}
		return
	}

	utils.SendCreated(c, "Review created successfully", review)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID := c.GetUint("user_id")

	reviewID, err := parseIDParam(c, "review_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid review ID")
		return
	}

	var req services.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	review, err := h.reviewService.UpdateReview(userID, reviewID, req)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.Is(err, services.ErrReviewNotFound):
			utils.SendNotFound(c, "Review not found")
		case errors.Is(err, services.ErrNotReviewOwner):
			utils.SendForbidden(c, "You can only edit your own reviews")
		case errors.As(err, &ve):
			utils.SendValidationError(c, ve.Error())
		default:
			utils.SendInternalError(c, "Failed to update review", err)
		}
		return
	}

	utils.SendSuccess(c, "Review updated successfully", review)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID := c.GetUint("user_id")

	reviewID, err := parseIDParam(c, "review_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid review ID")
		return
	}

	if err := h.reviewService.DeleteReview(userID, reviewID); err != nil {
		switch {
		case errors.Is(err, services.ErrReviewNotFound):
			utils.SendNotFound(c, "Review not found")
		case errors.Is(err, services.ErrNotReviewOwner):
			utils.SendForbidden(c, "You can only delete your own reviews")
		default:
			utils.SendInternalError(c, "Failed to delete review", err)
		}
		return
	}

	utils.SendSuccess(c, "Review deleted successfully", nil)
}

func (h *ReviewHandler) GetDishReviews(c *gin.Context) {
	dishID, err := parseIDParam(c, "dish_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid dish ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	reviews, err := h.reviewService.GetDishReviews(dishID, page, limit)
	if err != nil {
		if errors.Is(err, services.ErrDishNotFound) {
			utils.SendNotFound(c, "Dish not found")
			return
		}
		utils.SendInternalError(c, "Failed to retrieve reviews", err)
		return
	}

	utils.SendSuccess(c, "Reviews retrieved successfully", reviews)
}

func (h *ReviewHandler) FlagReview(c *gin.Context) {
	reviewID, err := parseIDParam(c, "review_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid review ID")
		return
	}

	if err := h.reviewService.FlagReview(reviewID); err != nil {
		if errors.Is(err, services.ErrReviewNotFound) {
			utils.SendNotFound(c, "Review not found")
			return
		}
		utils.SendInternalError(c, "Failed to flag review", err)
		return
	}

	utils.SendSuccess(c, "Review flagged for moderation", nil)
}

func (h *ReviewHandler) GetFlaggedReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetFlaggedReviews()
	if err != nil {
		utils.SendInternalError(c, "Failed to retrieve flagged reviews", err)
		return
	}

	utils.SendSuccess(c, "Flagged reviews retrieved successfully", reviews)
}

func (h *ReviewHandler) ModerateReview(c *gin.Context) {
	reviewID, err := parseIDParam(c, "review_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid review ID")
		return
	}

	var req struct {
		Action string `json:"action" binding:"required,oneof=approve remove"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Action must be 'approve' or 'remove'")
		return
	}

	if err := h.reviewService.ModerateReview(reviewID, req.Action); err != nil {
		if errors.Is(err, services.ErrReviewNotFound) {
			utils.SendNotFound(c, "Review not found")
			return
		}
		utils.SendInternalError(c, "Failed to moderate review", err)
		return
	}

	utils.SendSuccess(c, "Review moderated successfully", nil)
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
