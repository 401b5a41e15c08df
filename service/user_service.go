package service

import (
	"context"
	"database/sql"
	"errors"
	"mime"
	"path/filepath"
	"venue-review-api/logger"
	"venue-review-api/model"
	"venue-review-api/repository"
	"venue-review-api/storage"

	"github.com/spf13/afero"
)

// profilePhotoName is the stored name of a profile photo, before its extension.
const profilePhotoName = "profile"

// UserService handles registration, profiles and profile photos.
type UserService struct {
	users repository.IUserRepository
	auth  *AuthService
	media *storage.MediaStore
}

func NewUserService(users repository.IUserRepository, auth *AuthService, media *storage.MediaStore) *UserService {
	return &UserService{users: users, auth: auth, media: media}
}

// Register creates a user with the given plain-text password.
func (s *UserService) Register(ctx context.Context, user model.User, password string) (*model.CreatedUser, error) {
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.users.CreateUser(ctx, &user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	logger.Log.WithField("user_id", user.ID).Info("User registered")
	return &model.CreatedUser{UserID: user.ID}, nil
}

// GetProfile returns the public profile of id. viewerID is the caller, or nil when anonymous.
func (s *UserService) GetProfile(ctx context.Context, id int, viewerID *int) (*model.UserProfile, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserProfile(user, viewerID), nil
}

// Update changes the caller's own names or password.
func (s *UserService) Update(ctx context.Context, callerID, id int, update model.UserUpdate) error {
	if _, err := s.getUser(ctx, id); err != nil {
		return err
	}
	if callerID != id {
		return ErrForbidden
	}
	if update.IsEmpty() {
		return ErrNoChanges
	}

	var hash *string
	if update.Password != nil {
		h, err := s.auth.HashPassword(*update.Password)
		if err != nil {
			return err
		}
		hash = &h
	}
	return s.users.UpdateUser(ctx, id, update.GivenName, update.FamilyName, hash)
}

// PutPhoto sets the caller's profile photo. It reports whether the user had no photo before.
func (s *UserService) PutPhoto(ctx context.Context, callerID, id int, contentType string, data []byte) (bool, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return false, err
	}
	if callerID != id {
		return false, ErrForbidden
	}
	ext, ok := model.PhotoExtension(contentType)
	if !ok {
		return false, ErrUnsupportedFiletype
	}

	filename := profilePhotoName + ext
	if err := s.media.Save(storage.Users, id, filename, data); err != nil {
		return false, err
	}
	if err := s.users.SetProfilePhoto(ctx, id, &filename); err != nil {
		return false, err
	}

	previous := user.ProfilePhotoFilename
	if previous != nil && *previous != filename {
		if err := s.media.Remove(storage.Users, id, *previous); err != nil {
			logger.Log.WithError(err).WithField("user_id", id).Warn("Failed to remove previous profile photo")
		}
	}
	return previous == nil, nil
}

// OpenPhoto returns the user's profile photo and its content type.
func (s *UserService) OpenPhoto(ctx context.Context, id int) (afero.File, string, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if user.ProfilePhotoFilename == nil {
		return nil, "", ErrPhotoNotFound
	}
	name := *user.ProfilePhotoFilename
	f, err := s.media.Open(storage.Users, id, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrPhotoNotFound
		}
		return nil, "", err
	}
	return f, mime.TypeByExtension(filepath.Ext(name)), nil
}

// DeletePhoto removes the caller's profile photo.
func (s *UserService) DeletePhoto(ctx context.Context, callerID, id int) error {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return err
	}
	if callerID != id {
		return ErrForbidden
	}
	if user.ProfilePhotoFilename == nil {
		return ErrPhotoNotFound
	}
	if err := s.users.SetProfilePhoto(ctx, id, nil); err != nil {
		return err
	}
	if err := s.media.Remove(storage.Users, id, *user.ProfilePhotoFilename); err != nil {
		logger.Log.WithError(err).WithField("user_id", id).Warn("Failed to remove deleted profile photo")
	}
	return nil
}

func (s *UserService) getUser(ctx context.Context, id int) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
