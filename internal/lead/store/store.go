package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/google/uuid"

	"github.com/imobo/imobo/internal/lead"
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

// scanLead reads a lead row from the scanner.
// Expected column order: id, name, email, phone, property_ref, source,
// status, notes, created_at, updated_at, deleted_at
func scanLead(s scanner) (*lead.Lead, error) {
	var l lead.Lead

	var statusStr string

	if err := s.Scan(
		&l.ID, &l.Name, &l.Email, &l.Phone, &l.PropertyRef, &l.Source,
		&statusStr, &l.Notes, &l.CreatedAt, &l.UpdatedAt, &l.DeletedAt,
	); err != nil {
		return nil, err
	}

	l.Status = lead.Status(statusStr)

	return &l, nil
}

const selectLeadColumns = `
	l.id, l.name, l.email, l.phone, l.property_ref, l.source,
	l.status, l.notes, l.created_at, l.updated_at, l.deleted_at
`

const insertLeadQuery = `
	INSERT INTO leads (name, email, phone, property_ref, source, status, notes, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	RETURNING id, created_at, updated_at
`

func (s *Store) CreateLead(ctx context.Context, l *lead.Lead) error {
	err := s.db.QueryRowContext(ctx, insertLeadQuery,
		l.Name, l.Email, l.Phone, l.PropertyRef, l.Source, l.Status, l.Notes,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating lead: %w", err)
	}

	return nil
}

func (s *Store) GetLead(ctx context.Context, id uuid.UUID) (*lead.Lead, error) {
	query := `SELECT ` + selectLeadColumns + `
		FROM leads l
		WHERE l.id = $1 AND l.deleted_at IS NULL`

	l, err := scanLead(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, lead.ErrNotFound
		}

		return nil, fmt.Errorf("getting lead: %w", err)
	}

	return l, nil
}

func (s *Store) ListLeads(ctx context.Context, filter lead.ListFilter) ([]*lead.Lead, error) {
	query := `SELECT ` + selectLeadColumns + `
		FROM leads l
		WHERE l.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND l.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Source != nil {
		query += fmt.Sprintf(" AND l.source = $%d", argIdx)

		args = append(args, *filter.Source)
		argIdx++
	}

	query += " ORDER BY l.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	defer rows.Close()

	var leads []*lead.Lead

	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lead: %w", err)
		}

		leads = append(leads, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lead rows: %w", err)
	}

	return leads, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status lead.Status) error {
	query := `
		UPDATE leads
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating lead status: %w", err)
	}

	return nil
}

func (s *Store) DeleteLead(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE leads
		SET deleted_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting lead: %w", err)
	}

	return nil
}

func importLockKey(source string) int64 {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(source)))

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context, source string) (lead.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	lockKey := importLockKey(source)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, params []lead.CreateParams) ([]*lead.Lead, error) {
	if len(params) == 0 {
		return nil, nil
	}

	emails := make([]string, 0, len(params))
	for _, p := range params {
		if e := strings.ToLower(strings.TrimSpace(p.Email)); e != "" {
			emails = append(emails, e)
		}
	}

	phones := make([]string, 0, len(params))
	for _, p := range params {
		if ph := strings.TrimSpace(p.Phone); ph != "" {
			phones = append(phones, ph)
		}
	}

	query := `SELECT ` + selectLeadColumns + `
		FROM leads l
		WHERE l.deleted_at IS NULL AND (LOWER(l.email) = ANY($1) OR l.phone = ANY($2))
		ORDER BY l.created_at ASC`

	rows, err := itx.tx.QueryContext(ctx, query, emails, phones)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	var duplicates []*lead.Lead

	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lead: %w", err)
		}

		duplicates = append(duplicates, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return duplicates, nil
}

func (itx *importTx) CreateLeads(ctx context.Context, leads []*lead.Lead) error {
	for _, l := range leads {
		err := itx.tx.QueryRowContext(ctx, insertLeadQuery,
			l.Name, l.Email, l.Phone, l.PropertyRef, l.Source, l.Status, l.Notes,
		).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating lead: %w", err)
		}
	}

	return nil
}
