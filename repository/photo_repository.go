package repository

import (
	"context"
	"database/sql"
	"venue-review-api/logger"
	"venue-review-api/model"

	"github.com/sirupsen/logrus"
)

// IPhotoRepository defines the contract for venue photo database operations.
// The write methods run inside a caller-owned transaction.
type IPhotoRepository interface {
	ListByVenue(ctx context.Context, venueID int) ([]*model.VenuePhoto, error)
	GetPhoto(ctx context.Context, venueID int, filename string) (*model.VenuePhoto, error)
	HasPrimary(ctx context.Context, tx *sql.Tx, venueID int) (bool, error)
	ClearPrimary(ctx context.Context, tx *sql.Tx, venueID int) error
	Insert(ctx context.Context, tx *sql.Tx, photo *model.VenuePhoto) error
	SetPrimary(ctx context.Context, tx *sql.Tx, venueID int, filename string) error
	Delete(ctx context.Context, tx *sql.Tx, venueID int, filename string) error
	PromoteAny(ctx context.Context, tx *sql.Tx, venueID int) error
}

type PhotoRepository struct {
	DB *sql.DB
}

func NewPhotoRepository(db *sql.DB) *PhotoRepository {
	return &PhotoRepository{DB: db}
}

// ListByVenue retrieves every photo of a venue, primary first.
func (r *PhotoRepository) ListByVenue(ctx context.Context, venueID int) ([]*model.VenuePhoto, error) {
	log := logger.Log.WithField("venue_id", venueID)
	log.Info("Executing query to get photos by venue ID")

	query := `
		SELECT venue_id, photo_filename, photo_description, is_primary
		FROM venue_photo
		WHERE venue_id = $1
		ORDER BY is_primary DESC, photo_filename ASC`
	rows, err := r.DB.QueryContext(ctx, query, venueID)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for venue photos")
		return nil, err
	}
	defer rows.Close()

	photos := []*model.VenuePhoto{}
	for rows.Next() {
		var p model.VenuePhoto
		if err := rows.Scan(&p.VenueID, &p.PhotoFilename, &p.PhotoDescription, &p.IsPrimary); err != nil {
			log.WithError(err).Error("Failed to scan venue photo row")
			return nil, err
		}
		photos = append(photos, &p)
	}
	return photos, rows.Err()
}

// GetPhoto returns sql.ErrNoRows when the venue has no photo with that filename.
func (r *PhotoRepository) GetPhoto(ctx context.Context, venueID int, filename string) (*model.VenuePhoto, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"venue_id": venueID,
		"filename": filename,
	})

	p := &model.VenuePhoto{}
	query := `SELECT venue_id, photo_filename, photo_description, is_primary FROM venue_photo WHERE venue_id = $1 AND photo_filename = $2`
	err := r.DB.QueryRowContext(ctx, query, venueID, filename).Scan(&p.VenueID, &p.PhotoFilename, &p.PhotoDescription, &p.IsPrimary)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute get venue photo query")
		}
		return nil, err
	}
	return p, nil
}

func (r *PhotoRepository) HasPrimary(ctx context.Context, tx *sql.Tx, venueID int) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM venue_photo WHERE venue_id = $1 AND is_primary`
	if err := tx.QueryRowContext(ctx, query, venueID).Scan(&count); err != nil {
		logger.Log.WithError(err).WithField("venue_id", venueID).Error("Failed to check for a primary photo")
		return false, err
	}
	return count > 0, nil
}

func (r *PhotoRepository) ClearPrimary(ctx context.Context, tx *sql.Tx, venueID int) error {
	log := logger.Log.WithField("venue_id", venueID)
	log.Info("Executing query to clear primary photo")

	if _, err := tx.ExecContext(ctx, `UPDATE venue_photo SET is_primary = FALSE WHERE venue_id = $1 AND is_primary`, venueID); err != nil {
		log.WithError(err).Error("Failed to execute clear primary photo query")
		return err
	}
	return nil
}

func (r *PhotoRepository) Insert(ctx context.Context, tx *sql.Tx, photo *model.VenuePhoto) error {
	log := logger.Log.WithFields(logrus.Fields{
		"venue_id":   photo.VenueID,
		"filename":   photo.PhotoFilename,
		"is_primary": photo.IsPrimary,
	})
	log.Info("Executing query to insert venue photo")

	query := `INSERT INTO venue_photo (venue_id, photo_filename, photo_description, is_primary) VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, query, photo.VenueID, photo.PhotoFilename, photo.PhotoDescription, photo.IsPrimary); err != nil {
		log.WithError(err).Error("Failed to execute insert venue photo query")
		return err
	}
	return nil
}

func (r *PhotoRepository) SetPrimary(ctx context.Context, tx *sql.Tx, venueID int, filename string) error {
	log := logger.Log.WithFields(logrus.Fields{
		"venue_id": venueID,
		"filename": filename,
	})
	log.Info("Executing query to set primary photo")

	query := `UPDATE venue_photo SET is_primary = TRUE WHERE venue_id = $1 AND photo_filename = $2`
	if _, err := tx.ExecContext(ctx, query, venueID, filename); err != nil {
		log.WithError(err).Error("Failed to execute set primary photo query")
		return err
	}
	return nil
}

func (r *PhotoRepository) Delete(ctx context.Context, tx *sql.Tx, venueID int, filename string) error {
	log := logger.Log.WithFields(logrus.Fields{
		"venue_id": venueID,
		"filename": filename,
	})
	log.Info("Executing query to delete venue photo")

	query := `DELETE FROM venue_photo WHERE venue_id = $1 AND photo_filename = $2`
	if _, err := tx.ExecContext(ctx, query, venueID, filename); err != nil {
		log.WithError(err).Error("Failed to execute delete venue photo query")
		return err
	}
	return nil
}

// PromoteAny makes the alphabetically first remaining photo primary. It does nothing when none remain.
func (r *PhotoRepository) PromoteAny(ctx context.Context, tx *sql.Tx, venueID int) error {
	log := logger.Log.WithField("venue_id", venueID)
	log.Info("Executing query to promote a remaining photo")

	query := `
		UPDATE venue_photo SET is_primary = TRUE
		WHERE venue_id = $1 AND photo_filename = (
			SELECT photo_filename FROM venue_photo WHERE venue_id = $1 ORDER BY photo_filename LIMIT 1
		)`
	if _, err := tx.ExecContext(ctx, query, venueID); err != nil {
		log.WithError(err).Error("Failed to execute promote photo query")
		return err
	}
	return nil
}
