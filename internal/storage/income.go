package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jeamar123/budget-api/internal/core"
)

func (r *Repository) CreateIncome(ctx context.Context, in *core.Income) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO income (user_id, amount, description, date) VALUES (?, ?, ?, ?)`,
		in.UserID, encodeAmount(in.Amount), in.Description, encodeDate(in.Date))
	if err != nil {
		return fmt.Errorf("create income: %w", err)
	}
	in.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create income id: %w", err)
	}
	return nil
}

func (r *Repository) IncomeByID(ctx context.Context, userID, id int64) (core.Income, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, amount, description, date FROM income WHERE id = ? AND user_id = ?`,
		id, userID)

	var (
		in           core.Income
		amount, date string
	)
	err := row.Scan(&in.ID, &in.UserID, &amount, &in.Description, &date)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Income{}, &core.NotFoundError{Entity: "income"}
	}
	if err != nil {
		return core.Income{}, fmt.Errorf("get income: %w", err)
	}
	return decodeIncome(in, amount, date)
}

// Incomes lists the user's income rows ordered by date ascending. A nil
// range returns everything.
func (r *Repository) Incomes(ctx context.Context, userID int64, rng *DateRange) ([]core.Income, error) {
	query := `SELECT id, user_id, amount, description, date FROM income WHERE user_id = ?`
	args := []any{userID}
	if rng != nil {
		query += ` AND date >= ? AND date <= ?`
		args = append(args, encodeDate(rng.Start), encodeDate(rng.End))
	}
	query += ` ORDER BY date ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list income: %w", err)
	}
	defer rows.Close()

	var incomes []core.Income
	for rows.Next() {
		var (
			in           core.Income
			amount, date string
		)
		if err := rows.Scan(&in.ID, &in.UserID, &amount, &in.Description, &date); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		in, err = decodeIncome(in, amount, date)
		if err != nil {
			return nil, err
		}
		incomes = append(incomes, in)
	}
	return incomes, rows.Err()
}

func (r *Repository) UpdateIncome(ctx context.Context, in core.Income) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE income SET amount = ?, description = ?, date = ? WHERE id = ? AND user_id = ?`,
		encodeAmount(in.Amount), in.Description, encodeDate(in.Date), in.ID, in.UserID)
	if err != nil {
		return fmt.Errorf("update income: %w", err)
	}
	return requireRows(res, "income")
}

func (r *Repository) DeleteIncome(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM income WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	return requireRows(res, "income")
}

func decodeIncome(in core.Income, amount, date string) (core.Income, error) {
	var err error
	if in.Amount, err = decodeAmount(amount); err != nil {
		return core.Income{}, err
	}
	if in.Date, err = decodeDate(date); err != nil {
		return core.Income{}, err
	}
	return in, nil
}
