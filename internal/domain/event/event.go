// Package event defines the Event domain entity.
package event

import "github.com/eventpulse/eventpulse/internal/domain"

// Event represents a single listed event with purchasable tickets.
type Event struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Date        string         `json:"date"`
	ImageURL    string         `json:"image_url"`
	Organizer   string         `json:"organizer"`
	IsActive    domain.IntBool `json:"is_active"`
}

// CreateRequest holds the fields needed to create a new event.
// All fields are required; pointers distinguish "absent" from zero values.
type CreateRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Location    *string         `json:"location"`
	Date        *string         `json:"date"`
	ImageURL    *string         `json:"image_url"`
	Organizer   *string         `json:"organizer"`
	IsActive    *domain.IntBool `json:"is_active"`
}

// UpdateRequest holds a partial update. Only non-nil fields are applied.
type UpdateRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Location    *string         `json:"location"`
	Date        *string         `json:"date"`
	ImageURL    *string         `json:"image_url"`
	Organizer   *string         `json:"organizer"`
	IsActive    *domain.IntBool `json:"is_active"`
}

// Empty reports whether the update carries no fields at all.
func (r UpdateRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Location == nil &&
		r.Date == nil && r.ImageURL == nil && r.Organizer == nil && r.IsActive == nil
}
