package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jeamar123/budget-api/internal/core"
)

func (r *Repository) CreateUser(ctx context.Context, u *core.User) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (first_name, last_name, email, password_hash) VALUES (?, ?, ?, ?)`,
		u.FirstName, u.LastName, u.Email, u.PasswordHash)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	u.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create user id: %w", err)
	}
	return nil
}

func (r *Repository) UserByID(ctx context.Context, id int64) (core.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, password_hash FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *Repository) UserByEmail(ctx context.Context, email string) (core.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, password_hash FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// Users lists all accounts, optionally filtered by a substring match on the
// first or last name.
func (r *Repository) Users(ctx context.Context, search string) ([]core.User, error) {
	query := `SELECT id, first_name, last_name, email, password_hash FROM users`
	args := []any{}
	if search != "" {
		query += ` WHERE first_name LIKE ? OR last_name LIKE ?`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var u core.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// EmailExists reports whether another user already claims the email.
func (r *Repository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE email = ? AND id != ?`, email, excludeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return true, nil
}

func (r *Repository) UpdateUser(ctx context.Context, u core.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET first_name = ?, last_name = ?, email = ? WHERE id = ?`,
		u.FirstName, u.LastName, u.Email, u.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return requireRows(res, "user")
}

func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireRows(res, "user")
}

func scanUser(row *sql.Row) (core.User, error) {
	var u core.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, &core.NotFoundError{Entity: "user"}
	}
	if err != nil {
		return core.User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

// requireRows converts a zero-row update or delete into a NotFoundError.
func requireRows(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return &core.NotFoundError{Entity: entity}
	}
	return nil
}
