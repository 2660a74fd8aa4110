package contract

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("contract not found")

	// ErrNotDraft is returned when activating a contract that has already
	// left the draft state.
	ErrNotDraft = errors.New("contract is not in draft status")
)

// Status represents the lifecycle state of a contract.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusActive     Status = "active"
	StatusTerminated Status = "terminated"
	StatusExpired    Status = "expired"
)

// Contract represents a rental lease between a tenant and an owner.
type Contract struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	OwnerID     uuid.UUID
	PropertyRef string // external listing/unit reference
	Status      Status
	StartDate   time.Time
	EndDate     time.Time
	RentAmount  decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

// BillingDay returns the day-of-month billing anchor for this contract.
// Every cycle in the payment schedule is anchored to this day, derived
// from the contract start date.
func (c *Contract) BillingDay() int {
	return c.StartDate.Day()
}

// IsActive reports whether the contract should be billed.
func (c *Contract) IsActive() bool {
	return c.Status == StatusActive
}
