package owner

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("owner not found")

// Owner represents a property owner receiving rent payouts.
type Owner struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	PayoutRef string // bank account or gateway payout reference, opaque here
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}
