package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=payment
type Repository interface {
	CreatePayment(ctx context.Context, p *Payment) error
	GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error)
	ListPayments(ctx context.Context, filter ListFilter) ([]*Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error
	CountByContract(ctx context.Context, contractID uuid.UUID) (int, error)
	DeleteByContract(ctx context.Context, contractID uuid.UUID) (int64, error)

	BeginSchedule(ctx context.Context, contractID uuid.UUID) (ScheduleTx, error)
}

// ScheduleTx is a generation transaction for a single contract. It holds a
// per-contract lock for its lifetime, so two concurrent schedule runs for
// the same contract cannot both pass the existence check.
type ScheduleTx interface {
	CountByContract(ctx context.Context, contractID uuid.UUID) (int, error)
	CreatePayment(ctx context.Context, p *Payment) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	ContractID *uuid.UUID
	Status     *Status
	DueFrom    *time.Time
	DueTo      *time.Time
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return s.repo.GetPayment(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Payment, error) {
	return s.repo.ListPayments(ctx, filter)
}

func (s *Service) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*Payment, error) {
	return s.repo.ListPayments(ctx, ListFilter{ContractID: &contractID})
}

func (s *Service) CountByContract(ctx context.Context, contractID uuid.UUID) (int, error) {
	return s.repo.CountByContract(ctx, contractID)
}

// MarkPaid records settlement of a payment, typically on a gateway
// confirmation relayed by the caller.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	return s.repo.MarkPaid(ctx, id, paidAt)
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.repo.UpdateStatus(ctx, id, StatusCancelled)
}

// DeleteByContract wipes every payment for a contract and returns how many
// rows were removed. This is the explicit companion to force regeneration:
// the generator itself never deletes, callers that want a clean re-run call
// this first.
func (s *Service) DeleteByContract(ctx context.Context, contractID uuid.UUID) (int64, error) {
	return s.repo.DeleteByContract(ctx, contractID)
}
