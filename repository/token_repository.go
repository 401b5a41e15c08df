// file: repository/token_repository.go

package repository

import (
	"context"
	"database/sql"
	"venue-review-api/logger"
)

// ITokenRepository defines the contract for session token storage.
type ITokenRepository interface {
	SaveToken(ctx context.Context, userID int, token string) error
	FindUserIDByToken(ctx context.Context, token string) (int, error)
	ClearToken(ctx context.Context, userID int) error
}

// TokenRepository keeps one session token per user in users.auth_token.
type TokenRepository struct {
	DB *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

// SaveToken replaces the user's current token.
func (r *TokenRepository) SaveToken(ctx context.Context, userID int, token string) error {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to save session token")

	_, err := r.DB.ExecContext(ctx, `UPDATE users SET auth_token = $1 WHERE user_id = $2`, token, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute save token query")
		return err
	}
	return nil
}

// FindUserIDByToken returns sql.ErrNoRows when no user holds the token.
func (r *TokenRepository) FindUserIDByToken(ctx context.Context, token string) (int, error) {
	var userID int
	err := r.DB.QueryRowContext(ctx, `SELECT user_id FROM users WHERE auth_token = $1`, token).Scan(&userID)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute find token query")
		}
		return 0, err
	}
	return userID, nil
}

// ClearToken logs the user out of their session.
func (r *TokenRepository) ClearToken(ctx context.Context, userID int) error {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to clear session token")

	_, err := r.DB.ExecContext(ctx, `UPDATE users SET auth_token = NULL WHERE user_id = $1`, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute clear token query")
		return err
	}
	return nil
}
