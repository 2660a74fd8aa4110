package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/imobo/imobo/internal/contract"
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

// scanContract reads a contract row from the scanner.
// Expected column order: id, tenant_id, owner_id, property_ref, status,
// start_date, end_date, rent_amount, created_at, updated_at, deleted_at
func scanContract(s scanner) (*contract.Contract, error) {
	var c contract.Contract

	var statusStr string

	if err := s.Scan(
		&c.ID, &c.TenantID, &c.OwnerID, &c.PropertyRef, &statusStr,
		&c.StartDate, &c.EndDate, &c.RentAmount,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	); err != nil {
		return nil, err
	}

	c.Status = contract.Status(statusStr)

	return &c, nil
}

const selectContractColumns = `
	c.id, c.tenant_id, c.owner_id, c.property_ref, c.status,
	c.start_date, c.end_date, c.rent_amount, c.created_at, c.updated_at, c.deleted_at
`

func (s *Store) CreateContract(ctx context.Context, c *contract.Contract) error {
	query := `
		INSERT INTO contracts (tenant_id, owner_id, property_ref, status, start_date, end_date, rent_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.TenantID,
		c.OwnerID,
		c.PropertyRef,
		c.Status,
		c.StartDate,
		c.EndDate,
		c.RentAmount,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating contract: %w", err)
	}

	return nil
}

func (s *Store) GetContract(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	query := `SELECT ` + selectContractColumns + `
		FROM contracts c
		WHERE c.id = $1 AND c.deleted_at IS NULL`

	c, err := scanContract(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, contract.ErrNotFound
		}

		return nil, fmt.Errorf("getting contract: %w", err)
	}

	return c, nil
}

func (s *Store) ListContracts(ctx context.Context, filter contract.ListFilter) ([]*contract.Contract, error) {
	query := `SELECT ` + selectContractColumns + `
		FROM contracts c
		WHERE c.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND c.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.TenantID != nil {
		query += fmt.Sprintf(" AND c.tenant_id = $%d", argIdx)

		args = append(args, *filter.TenantID)
		argIdx++
	}

	if filter.OwnerID != nil {
		query += fmt.Sprintf(" AND c.owner_id = $%d", argIdx)

		args = append(args, *filter.OwnerID)
		argIdx++
	}

	query += " ORDER BY c.start_date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	defer rows.Close()

	var contracts []*contract.Contract

	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contract: %w", err)
		}

		contracts = append(contracts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contract rows: %w", err)
	}

	return contracts, nil
}

func (s *Store) UpdateContract(ctx context.Context, c *contract.Contract) error {
	query := `
		UPDATE contracts
		SET tenant_id = $1, owner_id = $2, property_ref = $3, start_date = $4, end_date = $5, rent_amount = $6, updated_at = NOW()
		WHERE id = $7 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		c.TenantID,
		c.OwnerID,
		c.PropertyRef,
		c.StartDate,
		c.EndDate,
		c.RentAmount,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating contract: %w", err)
	}

	return nil
}

func (s *Store) UpdateContractStatus(ctx context.Context, id uuid.UUID, status contract.Status) error {
	query := `
		UPDATE contracts
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating contract status: %w", err)
	}

	return nil
}

func (s *Store) DeleteContract(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE contracts
		SET deleted_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting contract: %w", err)
	}

	return nil
}
