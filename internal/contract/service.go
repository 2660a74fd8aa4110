package contract

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=contract
type Repository interface {
	CreateContract(ctx context.Context, c *Contract) error
	GetContract(ctx context.Context, id uuid.UUID) (*Contract, error)
	ListContracts(ctx context.Context, filter ListFilter) ([]*Contract, error)
	UpdateContract(ctx context.Context, c *Contract) error
	UpdateContractStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteContract(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	TenantID    uuid.UUID
	OwnerID     uuid.UUID
	PropertyRef string
	StartDate   time.Time
	EndDate     time.Time
	RentAmount  decimal.Decimal
}

type ListFilter struct {
	Status   *Status
	TenantID *uuid.UUID
	OwnerID  *uuid.UUID
}

var (
	errEndBeforeStart  = errors.New("end date is before start date")
	errRentNotPositive = errors.New("rent amount must be positive")
)

func (s *Service) Create(ctx context.Context, params CreateParams) (*Contract, error) {
	if params.EndDate.Before(params.StartDate) {
		return nil, errEndBeforeStart
	}

	if !params.RentAmount.IsPositive() {
		return nil, errRentNotPositive
	}

	c := &Contract{
		TenantID:    params.TenantID,
		OwnerID:     params.OwnerID,
		PropertyRef: params.PropertyRef,
		Status:      StatusDraft,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		RentAmount:  params.RentAmount,
	}
	if err := s.repo.CreateContract(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Contract, error) {
	return s.repo.GetContract(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Contract, error) {
	return s.repo.ListContracts(ctx, filter)
}

func (s *Service) Update(ctx context.Context, c *Contract) error {
	return s.repo.UpdateContract(ctx, c)
}

// Activate moves a draft contract into active status. Billing picks up
// newly active contracts on the next runner sweep.
func (s *Service) Activate(ctx context.Context, id uuid.UUID) (*Contract, error) {
	c, err := s.repo.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.Status != StatusDraft {
		return nil, ErrNotDraft
	}

	if err := s.repo.UpdateContractStatus(ctx, id, StatusActive); err != nil {
		return nil, err
	}

	c.Status = StatusActive

	return c, nil
}

// Terminate ends a contract early. Payments already generated are left
// untouched; cancelling them is a payment-level decision.
func (s *Service) Terminate(ctx context.Context, id uuid.UUID) error {
	return s.repo.UpdateContractStatus(ctx, id, StatusTerminated)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteContract(ctx, id)
}
