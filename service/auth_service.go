package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"venue-review-api/logger"
	"venue-review-api/model"
	"venue-review-api/repository"

	"golang.org/x/crypto/bcrypt"
)

const (
	passwordCost = 12
	tokenBytes   = 32
)

// AuthService issues and resolves session tokens. A user holds at most one token
// at a time; tokens do not expire and are only revoked by logging out.
type AuthService struct {
	users  repository.IUserRepository
	tokens repository.ITokenRepository
}

func NewAuthService(users repository.IUserRepository, tokens repository.ITokenRepository) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Login checks the password of the user named by username, or by email when
// username is nil, and stores a fresh token for them.
func (s *AuthService) Login(ctx context.Context, username, email *string, password string) (*model.Session, error) {
	var (
		user *model.User
		err  error
	)
	switch {
	case username != nil:
		user, err = s.users.GetUserByUsername(ctx, *username)
	case email != nil:
		user, err = s.users.GetUserByEmail(ctx, *email)
	default:
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.CheckPasswordHash(password, user.PasswordHash) {
		logger.Log.WithField("user_id", user.ID).Warn("Login attempt with a wrong password")
		return nil, ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}
	if err := s.tokens.SaveToken(ctx, user.ID, token); err != nil {
		return nil, fmt.Errorf("could not save token: %w", err)
	}

	logger.Log.WithField("user_id", user.ID).Info("User logged in")
	return &model.Session{UserID: user.ID, Token: token}, nil
}

// Logout revokes the token held by userID.
func (s *AuthService) Logout(ctx context.Context, userID int) error {
	return s.tokens.ClearToken(ctx, userID)
}

// Authorize resolves a token to the id of the user holding it.
func (s *AuthService) Authorize(ctx context.Context, token string) (int, error) {
	if token == "" {
		return 0, ErrUnauthenticated
	}
	userID, err := s.tokens.FindUserIDByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUnauthenticated
		}
		return 0, err
	}
	return userID, nil
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("could not generate token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
