package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/imobo/imobo/internal/payment"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanPayment reads a payment row from the scanner.
// Expected column order: id, contract_id, amount, due_date, status, paid_at, created_at, updated_at
func scanPayment(s scanner) (*payment.Payment, error) {
	var p payment.Payment

	var statusStr string

	if err := s.Scan(
		&p.ID, &p.ContractID, &p.Amount, &p.DueDate, &statusStr,
		&p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Status = payment.Status(statusStr)

	return &p, nil
}

const selectPaymentColumns = `
	p.id, p.contract_id, p.amount, p.due_date, p.status, p.paid_at, p.created_at, p.updated_at
`

const insertPaymentQuery = `
	INSERT INTO payments (contract_id, amount, due_date, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, NOW(), NOW())
	RETURNING id, created_at, updated_at
`

func (s *Store) CreatePayment(ctx context.Context, p *payment.Payment) error {
	err := s.db.QueryRowContext(ctx, insertPaymentQuery,
		p.ContractID,
		p.Amount,
		p.DueDate,
		p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (s *Store) GetPayment(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + `
		FROM payments p
		WHERE p.id = $1`

	p, err := scanPayment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, payment.ErrNotFound
		}

		return nil, fmt.Errorf("getting payment: %w", err)
	}

	return p, nil
}

func (s *Store) ListPayments(ctx context.Context, filter payment.ListFilter) ([]*payment.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + `
		FROM payments p
		WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.ContractID != nil {
		query += fmt.Sprintf(" AND p.contract_id = $%d", argIdx)

		args = append(args, *filter.ContractID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND p.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.DueFrom != nil {
		query += fmt.Sprintf(" AND p.due_date >= $%d", argIdx)

		args = append(args, *filter.DueFrom)
		argIdx++
	}

	if filter.DueTo != nil {
		query += fmt.Sprintf(" AND p.due_date <= $%d", argIdx)

		args = append(args, *filter.DueTo)
		argIdx++
	}

	query += " ORDER BY p.due_date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*payment.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return payments, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status payment.Status) error {
	query := `
		UPDATE payments
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	return nil
}

func (s *Store) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	query := `
		UPDATE payments
		SET status = $1, paid_at = $2, updated_at = NOW()
		WHERE id = $3
	`

	_, err := s.db.ExecContext(ctx, query, payment.StatusPaid, paidAt, id)
	if err != nil {
		return fmt.Errorf("marking payment paid: %w", err)
	}

	return nil
}

func (s *Store) CountByContract(ctx context.Context, contractID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM payments WHERE contract_id = $1`

	var count int
	if err := s.db.QueryRowContext(ctx, query, contractID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting payments: %w", err)
	}

	return count, nil
}

func (s *Store) DeleteByContract(ctx context.Context, contractID uuid.UUID) (int64, error) {
	query := `DELETE FROM payments WHERE contract_id = $1`

	res, err := s.db.ExecContext(ctx, query, contractID)
	if err != nil {
		return 0, fmt.Errorf("deleting payments: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting payments: %w", err)
	}

	return n, nil
}

// contractLockKey derives the advisory-lock key that serializes schedule
// generation for a single contract.
func contractLockKey(contractID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write(contractID[:])

	return int64(h.Sum64())
}

type scheduleTx struct {
	tx *sql.Tx
}

// BeginSchedule opens a generation transaction for one contract and takes a
// transaction-scoped advisory lock on it. A second generation run for the
// same contract blocks here until the first commits or rolls back, so both
// can never pass the existence check together.
func (s *Store) BeginSchedule(ctx context.Context, contractID uuid.UUID) (payment.ScheduleTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning schedule tx: %w", err)
	}

	lockKey := contractLockKey(contractID)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring contract lock: %w", err)
	}

	return &scheduleTx{tx: dbTx}, nil
}

func (stx *scheduleTx) Commit() error   { return stx.tx.Commit() }
func (stx *scheduleTx) Rollback() error { return stx.tx.Rollback() }

func (stx *scheduleTx) CountByContract(ctx context.Context, contractID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM payments WHERE contract_id = $1`

	var count int
	if err := stx.tx.QueryRowContext(ctx, query, contractID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting payments: %w", err)
	}

	return count, nil
}

func (stx *scheduleTx) CreatePayment(ctx context.Context, p *payment.Payment) error {
	err := stx.tx.QueryRowContext(ctx, insertPaymentQuery,
		p.ContractID,
		p.Amount,
		p.DueDate,
		p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}
