package lead

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=lead
type Repository interface {
	CreateLead(ctx context.Context, l *Lead) error
	GetLead(ctx context.Context, id uuid.UUID) (*Lead, error)
	ListLeads(ctx context.Context, filter ListFilter) ([]*Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteLead(ctx context.Context, id uuid.UUID) error

	BeginImport(ctx context.Context, source string) (ImportTx, error)
}

// ImportTx is an import transaction holding a per-source lock, so two
// concurrent imports of the same portal export cannot double-insert.
type ImportTx interface {
	FindDuplicates(ctx context.Context, params []CreateParams) ([]*Lead, error)
	CreateLeads(ctx context.Context, leads []*Lead) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name        string
	Email       string
	Phone       string
	PropertyRef string
	Source      string
	Notes       string
}

type ListFilter struct {
	Status *Status
	Source *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Lead, error) {
	l := paramsToLead(params)
	if err := s.repo.CreateLead(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Lead, error) {
	return s.repo.GetLead(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Lead, error) {
	return s.repo.ListLeads(ctx, filter)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteLead(ctx, id)
}

type ImportResult struct {
	Imported  []*Lead
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Lead
}

// ImportBatch inserts a parsed portal export. Incoming rows matching an
// existing lead by contact details are reported as conflicts; when any
// conflict is found nothing is inserted and the caller decides how to
// proceed with the cleaned-up New slice.
func (s *Service) ImportBatch(ctx context.Context, source string, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	itx, err := s.repo.BeginImport(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[contactKey]*Lead, len(duplicates))

	for _, d := range duplicates {
		lookup[keyFor(d.Email, d.Phone)] = d
	}

	var newParams []CreateParams

	var conflicts []Conflict

	for _, p := range params {
		existing, found := lookup[keyFor(p.Email, p.Phone)]
		if found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	leads := make([]*Lead, len(newParams))
	for i, p := range newParams {
		leads[i] = paramsToLead(p)
	}

	if err := itx.CreateLeads(ctx, leads); err != nil {
		return nil, fmt.Errorf("create leads: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: leads}, nil
}

// contactKey identifies a lead by normalized contact details.
type contactKey struct {
	Email string
	Phone string
}

func keyFor(email, phone string) contactKey {
	return contactKey{
		Email: strings.ToLower(strings.TrimSpace(email)),
		Phone: strings.Map(keepDigits, phone),
	}
}

func keepDigits(r rune) rune {
	if r >= '0' && r <= '9' {
		return r
	}

	return -1
}

func paramsToLead(p CreateParams) *Lead {
	return &Lead{
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		PropertyRef: p.PropertyRef,
		Source:      p.Source,
		Status:      StatusNew,
		Notes:       p.Notes,
	}
}
