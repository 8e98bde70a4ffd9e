package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dpstore-backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// GetUserByEmail retrieves a user by email, or ErrNotFound.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves a user by id, or ErrNotFound.
func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE user_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a local account. A duplicate email surfaces as
// ErrEmailUsed.
func (s *Store) CreateUser(ctx context.Context, fullName, email string, passwordHash *string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user,
		`INSERT INTO users (full_name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING *`,
		fullName, email, passwordHash)
	if IsUniqueViolation(err) {
		return nil, ErrEmailUsed
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateFullName changes a user's display name.
func (s *Store) UpdateFullName(ctx context.Context, id int64, fullName string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user,
		`UPDATE users SET full_name = $1, updated_at = NOW() WHERE user_id = $2 RETURNING *`,
		fullName, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePasswordHash replaces a user's password hash.
func (s *Store) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE user_id = $2`, hash, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetResetToken stores a password-reset token with its expiry.
func (s *Store) SetResetToken(ctx context.Context, id int64, token string, expires time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET reset_password_token = $1, reset_password_expires = $2 WHERE user_id = $3`,
		token, expires, id)
	return err
}

// GetUserByResetToken finds the user holding a still-valid reset token.
func (s *Store) GetUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user,
		`SELECT * FROM users WHERE reset_password_token = $1 AND reset_password_expires > NOW()`, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ResetPassword sets the new hash and clears the reset token in one statement.
func (s *Store) ResetPassword(ctx context.Context, id int64, hash string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users
		 SET password_hash = $1, reset_password_token = NULL, reset_password_expires = NULL, updated_at = NOW()
		 WHERE user_id = $2`, hash, id)
	return err
}

// ListUsers retrieves all users for the back office, newest first.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.SelectContext(ctx, &users,
		`SELECT user_id, full_name, email, rewards_balance, created_at, updated_at
		 FROM users ORDER BY created_at DESC`)
	return users, err
}

// SetRewardsBalance overwrites a user's rewards balance (admin operation).
func (s *Store) SetRewardsBalance(ctx context.Context, id int64, balance int64) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user,
		`UPDATE users SET rewards_balance = $1, updated_at = NOW() WHERE user_id = $2 RETURNING *`,
		balance, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// --- Favorites ---

// ListFavorites retrieves the games a user has marked as favorite.
func (s *Store) ListFavorites(ctx context.Context, userID int64) ([]models.FavoriteGame, error) {
	var games []models.FavoriteGame
	err := s.db.SelectContext(ctx, &games,
		`SELECT g.game_id, g.name, g.slug, g.image_url
		 FROM games g
		 JOIN user_favorites uf ON g.game_id = uf.game_id
		 WHERE uf.user_id = $1
		 ORDER BY uf.created_at DESC`, userID)
	return games, err
}

// AddFavorite marks a game as favorite; re-adding is a no-op.
func (s *Store) AddFavorite(ctx context.Context, userID, gameID int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_favorites (user_id, game_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, gameID)
	return err
}

// RemoveFavorite unmarks a favorite, or ErrNotFound if it was not set.
func (s *Store) RemoveFavorite(ctx context.Context, userID, gameID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM user_favorites WHERE user_id = $1 AND game_id = $2`, userID, gameID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Transaction-scoped user helpers (core rewards workflow) ---

// GetUserForUpdateTx re-reads a user inside tx with a row lock so concurrent
// redemptions against the same balance serialize.
func (s *Store) GetUserForUpdateTx(ctx context.Context, tx *sqlx.Tx, id int64) (*models.User, error) {
	var user models.User
	err := tx.GetContext(ctx, &user, `SELECT * FROM users WHERE user_id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DebitRewardsTx subtracts redeemed points from a user's balance within tx.
func (s *Store) DebitRewardsTx(ctx context.Context, tx *sqlx.Tx, userID, amount int64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE users SET rewards_balance = rewards_balance - $1, updated_at = NOW() WHERE user_id = $2`,
		amount, userID)
	if err != nil {
		return fmt.Errorf("failed to debit rewards: %w", err)
	}
	return nil
}

// CreditRewardsTx adds accrued points to a user's balance within tx.
func (s *Store) CreditRewardsTx(ctx context.Context, tx *sqlx.Tx, userID, amount int64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE users SET rewards_balance = rewards_balance + $1, updated_at = NOW() WHERE user_id = $2`,
		amount, userID)
	if err != nil {
		return fmt.Errorf("failed to credit rewards: %w", err)
	}
	return nil
}
