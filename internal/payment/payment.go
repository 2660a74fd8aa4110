package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("payment not found")

// Status represents the lifecycle state of a payment.
// The schedule generator only ever creates pending or overdue payments;
// paid and cancelled are set by downstream payment processing.
type Status string

const (
	StatusPending   Status = "pending"
	StatusOverdue   Status = "overdue"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// Payment represents one billing cycle of rent due under a contract.
type Payment struct {
	ID         uuid.UUID
	ContractID uuid.UUID
	Amount     decimal.Decimal
	DueDate    time.Time
	Status     Status
	PaidAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
