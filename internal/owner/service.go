package owner

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateOwner(ctx context.Context, o *Owner) error
	GetOwner(ctx context.Context, id uuid.UUID) (*Owner, error)
	ListOwners(ctx context.Context) ([]*Owner, error)
	UpdateOwner(ctx context.Context, o *Owner) error
	DeleteOwner(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name      string
	Email     string
	Phone     string
	PayoutRef string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Owner, error) {
	o := &Owner{
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		PayoutRef: params.PayoutRef,
	}
	if err := s.repo.CreateOwner(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Owner, error) {
	return s.repo.GetOwner(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Owner, error) {
	return s.repo.ListOwners(ctx)
}

func (s *Service) Update(ctx context.Context, o *Owner) error {
	return s.repo.UpdateOwner(ctx, o)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteOwner(ctx, id)
}
