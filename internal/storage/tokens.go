package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jeamar123/budget-api/internal/core"
)

// CreateToken stores the hash of an issued bearer token. Plaintext tokens
// are never persisted.
func (r *Repository) CreateToken(ctx context.Context, userID int64, tokenHash string) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO api_tokens (user_id, token_hash) VALUES (?, ?)`,
		userID, tokenHash); err != nil {
		return fmt.Errorf("create token: %w", err)
	}
	return nil
}

func (r *Repository) UserIDByToken(ctx context.Context, tokenHash string) (int64, error) {
	var userID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM api_tokens WHERE token_hash = ?`, tokenHash).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &core.NotFoundError{Entity: "token"}
	}
	if err != nil {
		return 0, fmt.Errorf("resolve token: %w", err)
	}
	return userID, nil
}

// DeleteUserTokens revokes every token of the user, matching the original
// logout-everywhere behavior.
func (r *Repository) DeleteUserTokens(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM api_tokens WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete tokens: %w", err)
	}
	return nil
}
