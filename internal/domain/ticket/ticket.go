// Package ticket defines the Ticket domain entity.
package ticket

import (
	"fmt"

	"github.com/eventpulse/eventpulse/internal/domain"
)

// Ticket represents one ticket class belonging to an event. AvailableQuantity
// is never negative; the storage layer enforces this under concurrency.
type Ticket struct {
	ID                int64          `json:"id"`
	EventID           int64          `json:"event_id"`
	Title             string         `json:"title"`
	Type              string         `json:"type"`
	AvailableQuantity int            `json:"available_quantity"`
	IsActive          domain.IntBool `json:"is_active"`
}

// ValidatePurchase checks the requested quantity before any storage access.
func ValidatePurchase(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be a positive integer: %w", domain.ErrValidation)
	}
	return nil
}
