package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jeamar123/budget-api/internal/core"
)

func (r *Repository) CreateBudget(ctx context.Context, b *core.Budget) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (user_id, amount, date, name, category_id) VALUES (?, ?, ?, ?, ?)`,
		b.UserID, encodeAmount(b.Amount), encodeDate(b.Date), b.Name, b.CategoryID)
	if err != nil {
		return fmt.Errorf("create budget: %w", err)
	}
	b.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create budget id: %w", err)
	}
	return nil
}

func (r *Repository) BudgetByID(ctx context.Context, userID, id int64) (core.Budget, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, amount, date, name, category_id
		 FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	return scanBudgetRow(row)
}

// Budgets lists the user's budget rows ordered by date ascending. A nil
// range returns everything.
func (r *Repository) Budgets(ctx context.Context, userID int64, rng *DateRange) ([]core.Budget, error) {
	query := `SELECT id, user_id, amount, date, name, category_id FROM budgets WHERE user_id = ?`
	args := []any{userID}
	if rng != nil {
		query += ` AND date >= ? AND date <= ?`
		args = append(args, encodeDate(rng.Start), encodeDate(rng.End))
	}
	query += ` ORDER BY date ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		var (
			b            core.Budget
			amount, date string
		)
		if err := rows.Scan(&b.ID, &b.UserID, &amount, &date, &b.Name, &b.CategoryID); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b, err = decodeBudget(b, amount, date)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// BudgetByName returns the first budget row with the name inside the range.
func (r *Repository) BudgetByName(ctx context.Context, userID int64, rng DateRange, name string) (core.Budget, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, amount, date, name, category_id
		 FROM budgets
		 WHERE user_id = ? AND date >= ? AND date <= ? AND name = ?
		 ORDER BY id ASC LIMIT 1`,
		userID, encodeDate(rng.Start), encodeDate(rng.End), name)
	return scanBudgetRow(row)
}

// UpdateBudgetAmount replaces only the amount, as bulk planned-row updates do.
func (r *Repository) UpdateBudgetAmount(ctx context.Context, userID, id int64, amount decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE budgets SET amount = ? WHERE id = ? AND user_id = ?`,
		encodeAmount(amount), id, userID)
	if err != nil {
		return fmt.Errorf("update budget amount: %w", err)
	}
	return requireRows(res, "budget")
}

// UpdateBudgetPlan replaces amount, name and category of a category budget.
func (r *Repository) UpdateBudgetPlan(ctx context.Context, userID, id int64, amount decimal.Decimal, name string, categoryID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE budgets SET amount = ?, name = ?, category_id = ? WHERE id = ? AND user_id = ?`,
		encodeAmount(amount), name, categoryID, id, userID)
	if err != nil {
		return fmt.Errorf("update budget plan: %w", err)
	}
	return requireRows(res, "budget")
}

func (r *Repository) DeleteBudget(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireRows(res, "budget")
}

func scanBudgetRow(row *sql.Row) (core.Budget, error) {
	var (
		b            core.Budget
		amount, date string
	)
	err := row.Scan(&b.ID, &b.UserID, &amount, &date, &b.Name, &b.CategoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, &core.NotFoundError{Entity: "budget"}
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget: %w", err)
	}
	return decodeBudget(b, amount, date)
}

func decodeBudget(b core.Budget, amount, date string) (core.Budget, error) {
	var err error
	if b.Amount, err = decodeAmount(amount); err != nil {
		return core.Budget{}, err
	}
	if b.Date, err = decodeDate(date); err != nil {
		return core.Budget{}, err
	}
	return b, nil
}
