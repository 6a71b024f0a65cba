package event

import (
	"fmt"

	"github.com/eventpulse/eventpulse/internal/domain"
)

// ValidateCreateRequest checks that every required field is present.
func ValidateCreateRequest(req *CreateRequest) error {
	if req.Title == nil {
		return fmt.Errorf("title is required: %w", domain.ErrValidation)
	}
	if req.Description == nil {
		return fmt.Errorf("description is required: %w", domain.ErrValidation)
	}
	if req.Location == nil {
		return fmt.Errorf("location is required: %w", domain.ErrValidation)
	}
	if req.Date == nil {
		return fmt.Errorf("date is required: %w", domain.ErrValidation)
	}
	if req.ImageURL == nil {
		return fmt.Errorf("image_url is required: %w", domain.ErrValidation)
	}
	if req.Organizer == nil {
		return fmt.Errorf("organizer is required: %w", domain.ErrValidation)
	}
	if req.IsActive == nil {
		return fmt.Errorf("is_active is required: %w", domain.ErrValidation)
	}
	return nil
}

// ValidateUpdateRequest checks that at least one updatable field is supplied.
func ValidateUpdateRequest(req UpdateRequest) error {
	if req.Empty() {
		return fmt.Errorf("no valid fields provided to update: %w", domain.ErrValidation)
	}
	return nil
}
