package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"venue-review-api/logger"
	"venue-review-api/model"
	"venue-review-api/repository"
	"venue-review-api/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// PhotoService manages venue photos. The database rows and the primary flag are
// changed inside one transaction per request; the files live in the media store.
type PhotoService struct {
	db     *sql.DB
	venues repository.IVenueRepository
	photos repository.IPhotoRepository
	media  *storage.MediaStore
}

func NewPhotoService(db *sql.DB, venues repository.IVenueRepository, photos repository.IPhotoRepository, media *storage.MediaStore) *PhotoService {
	return &PhotoService{
		db:     db,
		venues: venues,
		photos: photos,
		media:  media,
	}
}

// Upload stores a new photo of venueID and returns its filename. The first photo
// of a venue always becomes primary; later ones only when MakePrimary is set.
func (s *PhotoService) Upload(ctx context.Context, callerID, venueID int, upload model.PhotoUpload) (string, error) {
	if err := checkVenueAdmin(ctx, s.venues, callerID, venueID); err != nil {
		return "", err
	}
	ext, ok := model.PhotoExtension(upload.ContentType)
	if !ok {
		return "", ErrUnsupportedFiletype
	}

	filename := uuid.NewString() + ext
	log := logger.Log.WithFields(logrus.Fields{
		"venue_id": venueID,
		"filename": filename,
	})

	if err := s.media.Save(storage.Venues, venueID, filename, upload.Data); err != nil {
		return "", fmt.Errorf("could not store photo: %w", err)
	}

	if err := s.insertPhoto(ctx, venueID, filename, upload); err != nil {
		if rmErr := s.media.Remove(storage.Venues, venueID, filename); rmErr != nil {
			log.WithError(rmErr).Error("Failed to remove orphaned photo file")
		}
		return "", err
	}

	log.Info("Venue photo uploaded")
	return filename, nil
}

func (s *PhotoService) insertPhoto(ctx context.Context, venueID int, filename string, upload model.PhotoUpload) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	hasPrimary, err := s.photos.HasPrimary(ctx, tx, venueID)
	if err != nil {
		return err
	}
	isPrimary := !hasPrimary || upload.MakePrimary
	if hasPrimary && upload.MakePrimary {
		if err := s.photos.ClearPrimary(ctx, tx, venueID); err != nil {
			return err
		}
	}

	err = s.photos.Insert(ctx, tx, &model.VenuePhoto{
		VenueID:          venueID,
		PhotoFilename:    filename,
		PhotoDescription: upload.Description,
		IsPrimary:        isPrimary,
	})
	if err != nil {
		return fmt.Errorf("could not create photo record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// Open returns the photo file and its content type.
func (s *PhotoService) Open(ctx context.Context, venueID int, filename string) (afero.File, string, error) {
	if _, err := s.photos.GetPhoto(ctx, venueID, filename); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrPhotoNotFound
		}
		return nil, "", err
	}
	f, err := s.media.Open(storage.Venues, venueID, filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			return nil, "", ErrPhotoNotFound
		}
		return nil, "", err
	}
	return f, mime.TypeByExtension(filepath.Ext(filename)), nil
}

// Delete removes a photo. When the primary photo goes, another remaining photo takes its place.
func (s *PhotoService) Delete(ctx context.Context, callerID, venueID int, filename string) error {
	if err := checkVenueAdmin(ctx, s.venues, callerID, venueID); err != nil {
		return err
	}
	photo, err := s.photos.GetPhoto(ctx, venueID, filename)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPhotoNotFound
		}
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.photos.Delete(ctx, tx, venueID, filename); err != nil {
		return err
	}
	if photo.IsPrimary {
		if err := s.photos.PromoteAny(ctx, tx, venueID); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	// The row is gone; a file left behind is only logged.
	if err := s.media.Remove(storage.Venues, venueID, filename); err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"venue_id": venueID,
			"filename": filename,
		}).Warn("Failed to remove deleted photo file")
	}
	return nil
}

// SetPrimary makes filename the venue's primary photo.
func (s *PhotoService) SetPrimary(ctx context.Context, callerID, venueID int, filename string) error {
	if err := checkVenueAdmin(ctx, s.venues, callerID, venueID); err != nil {
		return err
	}
	if _, err := s.photos.GetPhoto(ctx, venueID, filename); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPhotoNotFound
		}
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.photos.ClearPrimary(ctx, tx, venueID); err != nil {
		return err
	}
	if err := s.photos.SetPrimary(ctx, tx, venueID, filename); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}
