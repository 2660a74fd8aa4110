package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/imobo/imobo/internal/contract"
	"github.com/imobo/imobo/internal/payment"
)

//go:generate mockgen -source=service.go -destination=store_mock.go -package=billing
type ContractStore interface {
	GetContract(ctx context.Context, id uuid.UUID) (*contract.Contract, error)
	ListContracts(ctx context.Context, filter contract.ListFilter) ([]*contract.Contract, error)
}

type PaymentStore interface {
	BeginSchedule(ctx context.Context, contractID uuid.UUID) (payment.ScheduleTx, error)
}

// Service generates payment schedules. It is the single place schedules are
// created; route handlers and batch jobs alike go through GenerateSchedule.
type Service struct {
	contracts ContractStore
	payments  PaymentStore
	now       func() time.Time
}

// NewService creates a billing service. The clock is injected so overdue
// classification can be tested against a fixed date; pass nil for the wall
// clock.
func NewService(contracts ContractStore, payments PaymentStore, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}

	return &Service{
		contracts: contracts,
		payments:  payments,
		now:       clock,
	}
}

// GenerateSchedule computes and persists the monthly payment schedule for a
// contract, exactly once per billing cycle.
//
// An unknown contract id surfaces as contract.ErrNotFound. A contract that
// is not active yields an empty schedule and no error, as does a contract
// that already has payments (unless force is set). Force skips the
// existence guard only; it never deletes prior payments, callers that want
// a clean slate wipe them first via the payment service.
//
// The whole run happens inside a per-contract schedule transaction, so two
// concurrent calls for the same contract cannot both pass the guard, and a
// failed insert discards the cycles persisted earlier in the run.
func (s *Service) GenerateSchedule(ctx context.Context, contractID uuid.UUID, force bool) ([]*payment.Payment, error) {
	c, err := s.contracts.GetContract(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("resolving contract: %w", err)
	}

	if !c.IsActive() {
		slog.Debug("skipping schedule for inactive contract",
			"contract_id", contractID, "status", c.Status)

		return nil, nil
	}

	stx, err := s.payments.BeginSchedule(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("beginning schedule tx: %w", err)
	}
	defer stx.Rollback()

	existing, err := stx.CountByContract(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("counting existing payments: %w", err)
	}

	if existing > 0 && !force {
		return nil, nil
	}

	schedule, truncated := BuildSchedule(c, s.now())
	if truncated {
		slog.Warn("payment schedule truncated at cycle cap",
			"contract_id", contractID, "cycles", len(schedule))
	}

	for _, p := range schedule {
		if err := stx.CreatePayment(ctx, p); err != nil {
			return nil, fmt.Errorf("creating payment due %s: %w",
				p.DueDate.Format(time.DateOnly), err)
		}
	}

	if err := stx.Commit(); err != nil {
		return nil, fmt.Errorf("committing schedule: %w", err)
	}

	return schedule, nil
}
