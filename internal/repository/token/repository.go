package token

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ai-school/internal/models"
	"ai-school/internal/repository"

	"github.com/jmoiron/sqlx"
)

type tokenRepository struct {
	db *sqlx.DB
}

func NewTokenRepository(db *sqlx.DB) repository.TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.AuthToken) error {
	query := r.db.Rebind(`
		INSERT INTO auth_tokens (token, user_id, expires_at, is_used, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		token.Token,
		token.UserID,
		token.ExpiresAt,
		token.IsUsed,
		token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create auth token for user %d: %w", token.UserID, err)
	}
	return nil
}

func (r *tokenRepository) GetByToken(ctx context.Context, token string) (*models.AuthToken, error) {
	var t models.AuthToken
	query := r.db.Rebind(`
		SELECT token, user_id, expires_at, is_used, used_at, created_at
		FROM auth_tokens WHERE token = ?
	`)
	err := r.db.GetContext(ctx, &t, query, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get auth token: %w", err)
	}
	return &t, nil
}

// Redeem - одно условное UPDATE: из двух одновременных погашений выигрывает ровно одно
func (r *tokenRepository) Redeem(ctx context.Context, token string, now time.Time) (int64, bool, error) {
	query := r.db.Rebind(`
		UPDATE auth_tokens
		SET is_used = TRUE, used_at = ?
		WHERE token = ? AND is_used = FALSE AND expires_at > ?
		RETURNING user_id
	`)

	var userID int64
	err := r.db.QueryRowxContext(ctx, query, now, token, now).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redeem auth token: %w", err)
	}
	return userID, true, nil
}

func (r *tokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := r.db.Rebind(`DELETE FROM auth_tokens WHERE expires_at <= ? OR is_used = TRUE`)
	res, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("delete expired auth tokens: %w", err)
	}
	return res.RowsAffected()
}
