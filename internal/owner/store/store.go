package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/imobo/imobo/internal/owner"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOwner(s scanner) (*owner.Owner, error) {
	var o owner.Owner

	if err := s.Scan(
		&o.ID, &o.Name, &o.Email, &o.Phone, &o.PayoutRef,
		&o.CreatedAt, &o.UpdatedAt, &o.DeletedAt,
	); err != nil {
		return nil, err
	}

	return &o, nil
}

const selectOwnerColumns = `
	o.id, o.name, o.email, o.phone, o.payout_ref, o.created_at, o.updated_at, o.deleted_at
`

func (s *Store) CreateOwner(ctx context.Context, o *owner.Owner) error {
	query := `
		INSERT INTO owners (name, email, phone, payout_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		o.Name,
		o.Email,
		o.Phone,
		o.PayoutRef,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating owner: %w", err)
	}

	return nil
}

func (s *Store) GetOwner(ctx context.Context, id uuid.UUID) (*owner.Owner, error) {
	query := `SELECT ` + selectOwnerColumns + `
		FROM owners o
		WHERE o.id = $1 AND o.deleted_at IS NULL`

	o, err := scanOwner(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, owner.ErrNotFound
		}

		return nil, fmt.Errorf("getting owner: %w", err)
	}

	return o, nil
}

func (s *Store) ListOwners(ctx context.Context) ([]*owner.Owner, error) {
	query := `SELECT ` + selectOwnerColumns + `
		FROM owners o
		WHERE o.deleted_at IS NULL
		ORDER BY o.name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing owners: %w", err)
	}
	defer rows.Close()

	var owners []*owner.Owner

	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning owner: %w", err)
		}

		owners = append(owners, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating owner rows: %w", err)
	}

	return owners, nil
}

func (s *Store) UpdateOwner(ctx context.Context, o *owner.Owner) error {
	query := `
		UPDATE owners
		SET name = $1, email = $2, phone = $3, payout_ref = $4, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query, o.Name, o.Email, o.Phone, o.PayoutRef, o.ID)
	if err != nil {
		return fmt.Errorf("updating owner: %w", err)
	}

	return nil
}

func (s *Store) DeleteOwner(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE owners
		SET deleted_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting owner: %w", err)
	}

	return nil
}
