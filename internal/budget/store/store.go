package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrefarias/budgetmaster/internal/budget"
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

const selectBudgetColumns = `
	b.id, b.customer_name, b.customer_email, b.issue_date, b.expiry_date,
	b.status, b.total_amount, b.notes, b.created_at, b.updated_at
`

// scanBudget reads a budget header row.
// Expected column order: id, customer_name, customer_email, issue_date,
// expiry_date, status, total_amount, notes, created_at, updated_at.
func scanBudget(s scanner) (*budget.Budget, error) {
	var b budget.Budget

	var statusStr string

	var email, notes sql.NullString

	if err := s.Scan(
		&b.ID, &b.CustomerName, &email, &b.IssueDate, &b.ExpiryDate,
		&statusStr, &b.TotalAmount, &notes, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.Status = budget.Status(statusStr)
	b.CustomerEmail = email.String
	b.Notes = notes.String

	return &b, nil
}

func (s *Store) ListBudgets(ctx context.Context) ([]*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets b
		ORDER BY b.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget

	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget rows: %w", err)
	}

	return budgets, nil
}

func (s *Store) GetBudget(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets b
		WHERE b.id = $1`

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	items, err := s.listItems(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Items = items

	return b, nil
}

func (s *Store) listItems(ctx context.Context, budgetID uuid.UUID) ([]budget.Item, error) {
	query := `
		SELECT id, budget_id, description, item_type, quantity, unit_price, subtotal, created_at, updated_at
		FROM budget_items
		WHERE budget_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("listing budget items: %w", err)
	}
	defer rows.Close()

	var items []budget.Item

	for rows.Next() {
		var it budget.Item

		var typeStr string

		if err := rows.Scan(
			&it.ID, &it.BudgetID, &it.Description, &typeStr,
			&it.Quantity, &it.UnitPrice, &it.Subtotal,
			&it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning budget item: %w", err)
		}

		it.ItemType = budget.ItemType(typeStr)

		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}

	return items, nil
}

// CreateBudget writes the header and its full item set in one database
// transaction, so a failed item insert never leaves an orphaned header.
func (s *Store) CreateBudget(ctx context.Context, b *budget.Budget) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO budgets (customer_name, customer_email, issue_date, expiry_date, status, total_amount, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		b.CustomerName,
		nullString(b.CustomerEmail),
		b.IssueDate,
		b.ExpiryDate,
		b.Status,
		b.TotalAmount,
		nullString(b.Notes),
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating budget: %w", err)
	}

	if err := insertItems(ctx, dbTx, b); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing budget: %w", err)
	}

	return nil
}

// UpdateBudget rewrites the header and destructively replaces the item set
// (delete all, insert new) inside a single transaction.
func (s *Store) UpdateBudget(ctx context.Context, b *budget.Budget) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		UPDATE budgets
		SET customer_name = $1, customer_email = $2, issue_date = $3, expiry_date = $4,
			status = $5, total_amount = $6, notes = $7, updated_at = NOW()
		WHERE id = $8
	`

	res, err := dbTx.ExecContext(ctx, query,
		b.CustomerName,
		nullString(b.CustomerEmail),
		b.IssueDate,
		b.ExpiryDate,
		b.Status,
		b.TotalAmount,
		nullString(b.Notes),
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating budget: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}

	if affected == 0 {
		return budget.ErrNotFound
	}

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM budget_items WHERE budget_id = $1`, b.ID); err != nil {
		return fmt.Errorf("clearing budget items: %w", err)
	}

	if err := insertItems(ctx, dbTx, b); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing budget update: %w", err)
	}

	return nil
}

// DeleteBudget removes the items and then the header. The schema also
// cascades, but the aggregate does not rely on it.
func (s *Store) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM budget_items WHERE budget_id = $1`, id); err != nil {
		return fmt.Errorf("deleting budget items: %w", err)
	}

	res, err := dbTx.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}

	if affected == 0 {
		return budget.ErrNotFound
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing budget delete: %w", err)
	}

	return nil
}

func insertItems(ctx context.Context, dbTx *sql.Tx, b *budget.Budget) error {
	query := `
		INSERT INTO budget_items (budget_id, description, item_type, quantity, unit_price, subtotal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	for i := range b.Items {
		it := &b.Items[i]
		it.BudgetID = b.ID

		err := dbTx.QueryRowContext(ctx, query,
			it.BudgetID,
			it.Description,
			it.ItemType,
			it.Quantity,
			it.UnitPrice,
			it.Subtotal,
		).Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating budget item: %w", err)
		}
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
