package user

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

const userColumns = `id, telegram_user_id, username, first_name, last_name, language_code,
	is_premium, is_admin, created_at, updated_at`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateOrUpdate(ctx context.Context, user *models.TelegramUser) error {
	query := r.db.Rebind(`
		INSERT INTO telegram_users (telegram_user_id, username, first_name, last_name, language_code,
			is_premium, is_admin, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (telegram_user_id)
		DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			language_code = EXCLUDED.language_code,
			is_premium = EXCLUDED.is_premium,
			is_admin = EXCLUDED.is_admin,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`)

	err := r.db.QueryRowxContext(ctx, query,
		user.TelegramUserID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.LanguageCode,
		user.IsPremium,
		user.IsAdmin,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("upsert telegram user %d: %w", user.TelegramUserID, err)
	}
	return nil
}

func (r *userRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.TelegramUser, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM telegram_users WHERE telegram_user_id = ?`)
	return r.get(ctx, query, telegramID)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.TelegramUser, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM telegram_users WHERE id = ?`)
	return r.get(ctx, query, id)
}

func (r *userRepository) get(ctx context.Context, query string, arg any) (*models.TelegramUser, error) {
	var user models.TelegramUser
	err := r.db.GetContext(ctx, &user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get telegram user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*models.TelegramUser, error) {
	var users []*models.TelegramUser
	query := `SELECT ` + userColumns + ` FROM telegram_users ORDER BY created_at DESC, id DESC`

	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list telegram users: %w", err)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.TelegramUser) error {
	query := r.db.Rebind(`
		UPDATE telegram_users
		SET username = ?, first_name = ?, last_name = ?, language_code = ?,
			is_premium = ?, is_admin = ?, updated_at = ?
		WHERE id = ?
	`)
	_, err := r.db.ExecContext(ctx, query,
		user.Username,
		user.FirstName,
		user.LastName,
		user.LanguageCode,
		user.IsPremium,
		user.IsAdmin,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("update telegram user %d: %w", user.ID, err)
	}
	return nil
}

func (r *userRepository) SetAdmin(ctx context.Context, id int64, isAdmin bool, now time.Time) error {
	query := r.db.Rebind(`UPDATE telegram_users SET is_admin = ?, updated_at = ? WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, isAdmin, now, id); err != nil {
		return fmt.Errorf("set admin for user %d: %w", id, err)
	}
	return nil
}
