package services

import (
	"errors"
	"fmt"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrDishNotFound       = errors.New("dish not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrAttributeNotFound  = errors.New("attribute not found")
	ErrNotReviewOwner     = errors.New("review belongs to another user")
)

// DuplicateReviewError signals that the user already reviewed the dish. It
// carries the existing review's ID so the API can point the client at the edit
// flow instead of failing outright.
type DuplicateReviewError struct {
	ExistingReviewID uint
}

func (e *DuplicateReviewError) Error() string {
	return fmt.Sprintf("user already reviewed this dish (review %d)", e.ExistingReviewID)
}

// ValidationError carries a field-level message for 400 responses.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
