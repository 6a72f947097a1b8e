// Package auth handles password hashing and opaque API token lifecycle.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// TokenStore persists hashed API tokens. Plaintext tokens are never stored.
type TokenStore interface {
	CreateToken(ctx context.Context, userID int64, tokenHash string) error
	UserIDByToken(ctx context.Context, tokenHash string) (int64, error)
	DeleteUserTokens(ctx context.Context, userID int64) error
}

type Service struct {
	store      TokenStore
	bcryptCost int
}

func NewService(store TokenStore, bcryptCost int) *Service {
	return &Service{store: store, bcryptCost: bcryptCost}
}

func (s *Service) HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (s *Service) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Issue mints a new bearer token for the user and returns its plaintext
// form exactly once. Only the SHA-256 digest is persisted.
func (s *Service) Issue(ctx context.Context, userID int64) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)
	if err := s.store.CreateToken(ctx, userID, hashToken(token)); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	return token, nil
}

// Resolve maps a plaintext bearer token back to its owning user.
func (s *Service) Resolve(ctx context.Context, token string) (int64, error) {
	return s.store.UserIDByToken(ctx, hashToken(token))
}

// Revoke invalidates every token held by the user.
func (s *Service) Revoke(ctx context.Context, userID int64) error {
	return s.store.DeleteUserTokens(ctx, userID)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
