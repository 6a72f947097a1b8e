package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jeamar123/budget-api/internal/core"
)

func (r *Repository) CreateExpense(ctx context.Context, e *core.Expense) error {
	ids, err := encodeCategoryIDs(e.Categories)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (user_id, amount, description, date, category_ids) VALUES (?, ?, ?, ?, ?)`,
		e.UserID, encodeAmount(e.Amount), e.Description, encodeDate(e.Date), ids)
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create expense id: %w", err)
	}
	return nil
}

func (r *Repository) ExpenseByID(ctx context.Context, userID, id int64) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, amount, description, date, category_ids
		 FROM expenses WHERE id = ? AND user_id = ?`, id, userID)

	var (
		e                  core.Expense
		amount, date, cids string
	)
	err := row.Scan(&e.ID, &e.UserID, &amount, &e.Description, &date, &cids)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, &core.NotFoundError{Entity: "expenses"}
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return decodeExpense(e, amount, date, cids)
}

// Expenses lists the user's expenses ordered by date descending. A nil
// range returns everything; limit 0 means no limit.
func (r *Repository) Expenses(ctx context.Context, userID int64, rng *DateRange, limit int) ([]core.Expense, error) {
	query := `SELECT id, user_id, amount, description, date, category_ids
	          FROM expenses WHERE user_id = ?`
	args := []any{userID}
	if rng != nil {
		query += ` AND date >= ? AND date <= ?`
		args = append(args, encodeDate(rng.Start), encodeDate(rng.End))
	}
	query += ` ORDER BY date DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var (
			e                  core.Expense
			amount, date, cids string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &amount, &e.Description, &date, &cids); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e, err = decodeExpense(e, amount, date, cids)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// SumExpensesByCategory totals the expenses inside the range whose category
// set is exactly {categoryID}. The set comparison cannot be pushed into SQL
// because category_ids is stored as a JSON list in arbitrary order.
func (r *Repository) SumExpensesByCategory(ctx context.Context, userID, categoryID int64, rng DateRange) (decimal.Decimal, error) {
	expenses, err := r.Expenses(ctx, userID, &rng, 0)
	if err != nil {
		return decimal.Zero, err
	}
	want := core.CategorySet{categoryID}
	total := decimal.Zero
	for _, e := range expenses {
		if e.Categories.Equal(want) {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (r *Repository) UpdateExpense(ctx context.Context, e core.Expense) error {
	ids, err := encodeCategoryIDs(e.Categories)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET amount = ?, description = ?, date = ?, category_ids = ?
		 WHERE id = ? AND user_id = ?`,
		encodeAmount(e.Amount), e.Description, encodeDate(e.Date), ids, e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return requireRows(res, "expenses")
}

func (r *Repository) DeleteExpense(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireRows(res, "expenses")
}

func decodeExpense(e core.Expense, amount, date, cids string) (core.Expense, error) {
	var err error
	if e.Amount, err = decodeAmount(amount); err != nil {
		return core.Expense{}, err
	}
	if e.Date, err = decodeDate(date); err != nil {
		return core.Expense{}, err
	}
	if e.Categories, err = decodeCategoryIDs(cids); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}
