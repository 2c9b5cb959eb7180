package services

import (
	"errors"

	"github.com/foodie-app/foodie-backend/internal/models"
	"github.com/foodie-app/foodie-backend/internal/rating"
	"github.com/foodie-app/foodie-backend/internal/repository"
	"github.com/foodie-app/foodie-backend/internal/utils"
	"github.com/foodie-app/foodie-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewService struct {
	reviewRepo      repository.ReviewRepository
	dishRepo        repository.DishRepository
	stats           *StatsService
	emailService    *EmailService
	moderationEmail string
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	dishRepo repository.DishRepository,
	stats *StatsService,
	emailService *EmailService,
	moderationEmail string,
) *ReviewService {
	return &ReviewService{
		reviewRepo:      reviewRepo,
		dishRepo:        dishRepo,
		stats:           stats,
		emailService:    emailService,
		moderationEmail: moderationEmail,
	}
}

type AttributeRatingInput struct {
	AttributeID uint `json:"attribute_id" binding:"required"`
	Rating      int  `json:"rating" binding:"required"`
}

type CreateReviewRequest struct {
	DishID           uint                   `json:"dish_id" binding:"required"`
	Comment          string                 `json:"comment"`
	AttributeRatings []AttributeRatingInput `json:"attribute_ratings" binding:"required,min=1"`
}

type UpdateReviewRequest struct {
	Comment          string                 `json:"comment"`
	AttributeRatings []AttributeRatingInput `json:"attribute_ratings" binding:"required,min=1"`
}

type ReviewDetailResponse struct {
	AttributeID   uint    `json:"attribute_id"`
	AttributeName string  `json:"attribute_name"`
	Weight        float64 `json:"weight"`
	Rating        int     `json:"rating"` // 1-10 slider scale
}

type ReviewResponse struct {
	ID            uint                   `json:"id"`
	UserID        uint                   `json:"user_id"`
	DishID        uint                   `json:"dish_id"`
	UserName      string                 `json:"user_name"`
	Comment       string                 `json:"comment"`
	OverallRating float64                `json:"overall_rating"` // 0.5-5.0 storage scale
	DisplayRating float64                `json:"display_rating"` // 1-10 slider scale
	CreatedAt     string                 `json:"created_at"`
	Details       []ReviewDetailResponse `json:"details,omitempty"`
}

type PaginatedReviewsResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}

// CreateReview validates the submission, derives the overall rating from the
// per-attribute sliders, persists review and details in one transaction, and
// recomputes the affected dish and restaurant statistics.
func (s *ReviewService) CreateReview(userID uint, req CreateReviewRequest) (*ReviewResponse, error) {
	dish, err := s.dishRepo.FindByID(req.DishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDishNotFound
		}
		return nil, err
	}

	// Duplicate guard: at most one review per (user, dish). The unique index on
	// reviews(user_id, dish_id) backs this up against racing submissions.
	if existing, err := s.reviewRepo.FindByUserAndDish(userID, req.DishID); err == nil {
		return nil, &DuplicateReviewError{ExistingReviewID: existing.ID}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ratings, details, err := s.buildDetails(dish, req.AttributeRatings)
	if err != nil {
		return nil, err
	}

	review := models.Review{
		UserID:        userID,
		DishID:        req.DishID,
		Comment:       utils.SanitizeString(req.Comment),
		OverallRating: rating.ComputeOverallRating(ratings, attributeWeights(dish)),
		IsActive:      true,
	}

	if err := s.reviewRepo.CreateWithDetails(&review, details); err != nil {
		return nil, err
	}

	s.recompute(req.DishID)

	created, err := s.reviewRepo.FindByID(review.ID)
	if err != nil {
		return nil, err
	}
	return toReviewResponse(created), nil
}

// UpdateReview replaces the owning user's review content and details, then
// recomputes statistics. Only the review's author may edit it.
func (s *ReviewService) UpdateReview(userID, reviewID uint, req UpdateReviewRequest) (*ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrNotReviewOwner
	}

	dish, err := s.dishRepo.FindByID(review.DishID)
	if err != nil {
		return nil, err
	}

	ratings, details, err := s.buildDetails(dish, req.AttributeRatings)
	if err != nil {
		return nil, err
	}

	review.Comment = utils.SanitizeString(req.Comment)
	review.OverallRating = rating.ComputeOverallRating(ratings, attributeWeights(dish))
	review.Details = nil
	review.User = models.User{}
	review.Dish = models.Dish{}

	if err := s.reviewRepo.UpdateWithDetails(review, details); err != nil {
		return nil, err
	}

	s.recompute(review.DishID)

	updated, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		return nil, err
	}
	return toReviewResponse(updated), nil
}

// DeleteReview removes the review and its details (one transaction) and
// recomputes the dish and restaurant statistics from the remaining reviews.
func (s *ReviewService) DeleteReview(userID, reviewID uint) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.UserID != userID {
		return ErrNotReviewOwner
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		return err
	}

	s.recompute(review.DishID)
	return nil
}

func (s *ReviewService) GetDishReviews(dishID uint, page, limit int) (*PaginatedReviewsResponse, error) {
	if _, err := s.dishRepo.FindByID(dishID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDishNotFound
		}
		return nil, err
	}

	reviews, total, err := s.reviewRepo.FindByDish(dishID, page, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *toReviewResponse(&reviews[i]))
	}

	return &PaginatedReviewsResponse{
		Reviews: responses,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}

func (s *ReviewService) FlagReview(reviewID uint) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	review.IsFlagged = true
	if err := s.reviewRepo.Save(review); err != nil {
		return err
	}

	if s.emailService != nil && s.moderationEmail != "" {
		if err := s.emailService.SendReviewFlaggedNotification(s.moderationEmail, review.ID, review.Comment); err != nil {
			logger.Warn("Failed to send moderation email for review ", review.ID, ": ", err)
		}
	}
	return nil
}

func (s *ReviewService) GetFlaggedReviews() ([]models.Review, error) {
	return s.reviewRepo.FindFlagged()
}

// ModerateReview approves (unflags) or removes a flagged review. Removal keeps
// the row but deactivates it, which also drops it from every aggregate.
func (s *ReviewService) ModerateReview(reviewID uint, action string) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	switch action {
	case "approve":
		review.IsFlagged = false
		return s.reviewRepo.Save(review)
	case "remove":
		review.IsActive = false
		if err := s.reviewRepo.Save(review); err != nil {
			return err
		}
		s.recompute(review.DishID)
		return nil
	default:
		return &ValidationError{Field: "action", Message: "use 'approve' or 'remove'"}
	}
}

// buildDetails validates the submitted attribute ratings against the dish's
// rateable attribute set and materializes the detail rows (clamped to 1-10).
func (s *ReviewService) buildDetails(dish *models.Dish, inputs []AttributeRatingInput) (map[uint]int, []models.ReviewDetail, error) {
	if len(inputs) == 0 {
		return nil, nil, &ValidationError{Field: "attribute_ratings", Message: "at least one attribute rating is required"}
	}

	rateable := make(map[uint]bool, len(dish.Attributes))
	for _, attr := range dish.Attributes {
		rateable[attr.ID] = true
	}

	ratings := make(map[uint]int, len(inputs))
	details := make([]models.ReviewDetail, 0, len(inputs))
	for _, input := range inputs {
		if !rateable[input.AttributeID] {
			return nil, nil, &ValidationError{Field: "attribute_ratings", Message: "attribute not rateable for this dish"}
		}
		if _, dup := ratings[input.AttributeID]; dup {
			return nil, nil, &ValidationError{Field: "attribute_ratings", Message: "duplicate attribute rating"}
		}
		value := rating.ClampSlider(input.Rating)
		ratings[input.AttributeID] = value
		details = append(details, models.ReviewDetail{
			AttributeID: input.AttributeID,
			Rating:      value,
		})
	}

	return ratings, details, nil
}

// recompute refreshes derived stats after a review mutation. Failures are
// logged rather than surfaced; the review write itself already committed.
func (s *ReviewService) recompute(dishID uint) {
	if err := s.stats.RecomputeForDish(dishID); err != nil {
		logger.Error("Failed to recompute stats for dish ", dishID, ": ", err)
	}
}

func attributeWeights(dish *models.Dish) map[uint]float64 {
	weights := make(map[uint]float64, len(dish.Attributes))
	for _, attr := range dish.Attributes {
		weights[attr.ID] = attr.Weight
	}
	return weights
}

func toReviewResponse(review *models.Review) *ReviewResponse {
	userName := "Anonymous"
	if review.User.ID != 0 {
		userName = review.User.Username
	}

	details := make([]ReviewDetailResponse, 0, len(review.Details))
	for _, d := range review.Details {
		details = append(details, ReviewDetailResponse{
			AttributeID:   d.AttributeID,
			AttributeName: d.Attribute.Name,
			Weight:        d.Attribute.Weight,
			Rating:        d.Rating,
		})
	}

	return &ReviewResponse{
		ID:            review.ID,
		UserID:        review.UserID,
		DishID:        review.DishID,
		UserName:      userName,
		Comment:       review.Comment,
		OverallRating: review.OverallRating,
		DisplayRating: rating.ToDisplayScale(review.OverallRating),
		CreatedAt:     review.CreatedAt.Format("2006-01-02 15:04:05"),
		Details:       details,
	}
}
