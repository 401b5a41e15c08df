package repository

import (
	"context"
	"database/sql"
	"venue-review-api/logger"
	"venue-review-api/model"

	"github.com/sirupsen/logrus"
)

// IUserRepository defines the contract for user database operations.
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UserExists(ctx context.Context, id int) (bool, error)
	UpdateUser(ctx context.Context, id int, givenName, familyName, passwordHash *string) error
	SetProfilePhoto(ctx context.Context, id int, filename *string) error
}

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `user_id, username, email, given_name, family_name, password, auth_token, profile_photo_filename`

func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	log := logger.Log.WithField("username", user.Username)
	log.Info("Executing query to create a new user")

	query := `INSERT INTO users (username, email, given_name, family_name, password) VALUES ($1, $2, $3, $4, $5) RETURNING user_id`
	err := r.DB.QueryRowContext(ctx, query, user.Username, user.Email, user.GivenName, user.FamilyName, user.PasswordHash).Scan(&user.ID)
	if err != nil {
		log.WithError(err).Error("Failed to execute create user query")
		return err
	}
	return nil
}

// GetUserByID returns sql.ErrNoRows when no user has the id.
func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	return r.getUser(ctx, logger.Log.WithField("user_id", id), `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getUser(ctx, logger.Log.WithField("username", username), `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getUser(ctx, logger.Log.WithField("email", email), `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) getUser(ctx context.Context, log *logrus.Entry, query string, arg any) (*model.User, error) {
	var (
		user  model.User
		token sql.NullString
		photo sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.Username, &user.Email,
		&user.GivenName, &user.FamilyName, &user.PasswordHash, &token, &photo)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute get user query")
		}
		return nil, err
	}
	if token.Valid {
		user.AuthToken = &token.String
	}
	if photo.Valid {
		user.ProfilePhotoFilename = &photo.String
	}
	return &user, nil
}

// UserExists counts the user rows with the given id.
func (r *UserRepository) UserExists(ctx context.Context, id int) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(user_id) FROM users WHERE user_id = $1`, id).Scan(&count)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", id).Error("Failed to check user existence")
		return false, err
	}
	return count > 0, nil
}

// UpdateUser writes the non-nil fields. The password must already be hashed.
func (r *UserRepository) UpdateUser(ctx context.Context, id int, givenName, familyName, passwordHash *string) error {
	b := newUpdate("users")
	if givenName != nil {
		b.Set("given_name", *givenName)
	}
	if familyName != nil {
		b.Set("family_name", *familyName)
	}
	if passwordHash != nil {
		b.Set("password", *passwordHash)
	}
	if b.Empty() {
		return nil
	}
	b.Where("user_id = ?", id)

	log := logger.Log.WithField("user_id", id)
	log.Info("Executing query to update user")
	query, args := b.Build()
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		log.WithError(err).Error("Failed to execute update user query")
		return err
	}
	return nil
}

// SetProfilePhoto stores the profile photo filename, or clears it when filename is nil.
func (r *UserRepository) SetProfilePhoto(ctx context.Context, id int, filename *string) error {
	log := logger.Log.WithField("user_id", id)
	log.Info("Executing query to set profile photo")

	_, err := r.DB.ExecContext(ctx, `UPDATE users SET profile_photo_filename = $1 WHERE user_id = $2`, filename, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute set profile photo query")
		return err
	}
	return nil
}
