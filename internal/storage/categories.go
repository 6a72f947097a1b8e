package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jeamar123/budget-api/internal/core"
)

func (r *Repository) CreateCategory(ctx context.Context, c *core.Category) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (user_id, name) VALUES (?, ?)`,
		c.UserID, c.Name)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create category id: %w", err)
	}
	return nil
}

func (r *Repository) CategoryByID(ctx context.Context, userID, id int64) (core.Category, error) {
	var c core.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name FROM categories WHERE id = ? AND user_id = ?`,
		id, userID).Scan(&c.ID, &c.UserID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, &core.NotFoundError{Entity: "category"}
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// Categories lists the user's categories ordered by name, optionally
// filtered by a substring match.
func (r *Repository) Categories(ctx context.Context, userID int64, search string) ([]core.Category, error) {
	query := `SELECT id, user_id, name FROM categories WHERE user_id = ?`
	args := []any{userID}
	if search != "" {
		query += ` AND name LIKE ?`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// CategoryNameExists reports whether the user already has a category with
// the name, excluding the given id (0 to exclude nothing).
func (r *Repository) CategoryNameExists(ctx context.Context, userID int64, name string, excludeID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM categories WHERE user_id = ? AND name = ? AND id != ?`,
		userID, name, excludeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return true, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, c core.Category) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ? WHERE id = ? AND user_id = ?`,
		c.Name, c.ID, c.UserID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireRows(res, "category")
}

// DeleteCategory removes the category row only. Expense and budget rows
// keep their references; readers resolve them to "no category".
func (r *Repository) DeleteCategory(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireRows(res, "category")
}
