package tenant

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("tenant not found")

// Tenant represents a person renting a property.
type Tenant struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Phone       string
	DocumentRef string // national id / taxpayer number, opaque here
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}
