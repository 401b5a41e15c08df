package repository

import (
	"context"
	"database/sql"
	"venue-review-api/logger"
	"venue-review-api/model"

	"github.com/sirupsen/logrus"
)

// IReviewRepository defines the contract for review database operations.
type IReviewRepository interface {
	HasReviewed(ctx context.Context, authorID, venueID int) (bool, error)
	CreateReview(ctx context.Context, review *model.Review) error
	ListByVenue(ctx context.Context, venueID int) ([]*model.ReviewRow, error)
	ListByAuthor(ctx context.Context, authorID int) ([]*model.ReviewRow, error)
}

// ReviewRepository implements IReviewRepository.
type ReviewRepository struct {
	DB *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

const reviewListQuery = `
	SELECT review.review_author_id, users.username, review.review_body, review.star_rating,
		review.cost_rating, review.time_posted, venue.venue_id, venue.venue_name,
		venue_category.category_name, venue.city, venue.short_description, venue_photo.photo_filename
	FROM review
	JOIN users ON users.user_id = review.review_author_id
	JOIN venue ON venue.venue_id = review.reviewed_venue_id
	JOIN venue_category ON venue_category.category_id = venue.category_id
	LEFT JOIN venue_photo ON venue_photo.venue_id = venue.venue_id AND venue_photo.is_primary`

// HasReviewed reports whether the author already reviewed the venue.
func (r *ReviewRepository) HasReviewed(ctx context.Context, authorID, venueID int) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM review WHERE review_author_id = $1 AND reviewed_venue_id = $2`
	if err := r.DB.QueryRowContext(ctx, query, authorID, venueID).Scan(&count); err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"author_id": authorID,
			"venue_id":  venueID,
		}).Error("Failed to check for an existing review")
		return false, err
	}
	return count > 0, nil
}

func (r *ReviewRepository) CreateReview(ctx context.Context, review *model.Review) error {
	log := logger.Log.WithFields(logrus.Fields{
		"author_id":   review.AuthorID,
		"venue_id":    review.VenueID,
		"star_rating": review.StarRating,
		"cost_rating": review.CostRating,
	})
	log.Info("Executing query to create a new review")

	query := `
		INSERT INTO review (reviewed_venue_id, review_author_id, review_body, star_rating, cost_rating, time_posted)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING time_posted`
	err := r.DB.QueryRowContext(ctx, query,
		review.VenueID, review.AuthorID, review.ReviewBody, review.StarRating, review.CostRating,
	).Scan(&review.TimePosted)
	if err != nil {
		log.WithError(err).Error("Failed to execute create review query")
		return err
	}
	return nil
}

// ListByVenue retrieves the reviews of one venue, newest first.
func (r *ReviewRepository) ListByVenue(ctx context.Context, venueID int) ([]*model.ReviewRow, error) {
	log := logger.Log.WithField("venue_id", venueID)
	log.Info("Executing query to get reviews by venue ID")
	return r.list(ctx, log, reviewListQuery+` WHERE review.reviewed_venue_id = $1 ORDER BY review.time_posted DESC`, venueID)
}

// ListByAuthor retrieves the reviews written by one user, newest first.
func (r *ReviewRepository) ListByAuthor(ctx context.Context, authorID int) ([]*model.ReviewRow, error) {
	log := logger.Log.WithField("author_id", authorID)
	log.Info("Executing query to get reviews by author ID")
	return r.list(ctx, log, reviewListQuery+` WHERE review.review_author_id = $1 ORDER BY review.time_posted DESC`, authorID)
}

func (r *ReviewRepository) list(ctx context.Context, log *logrus.Entry, query string, id int) ([]*model.ReviewRow, error) {
	rows, err := r.DB.QueryContext(ctx, query, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute review list query")
		return nil, err
	}
	defer rows.Close()

	reviews := []*model.ReviewRow{}
	for rows.Next() {
		var (
			rr    model.ReviewRow
			photo sql.NullString
		)
		if err := rows.Scan(&rr.AuthorID, &rr.AuthorUsername, &rr.ReviewBody, &rr.StarRating,
			&rr.CostRating, &rr.TimePosted, &rr.VenueID, &rr.VenueName,
			&rr.CategoryName, &rr.City, &rr.ShortDescription, &photo); err != nil {
			log.WithError(err).Error("Failed to scan review row")
			return nil, err
		}
		if photo.Valid {
			rr.PrimaryPhoto = &photo.String
		}
		reviews = append(reviews, &rr)
	}
	if err := rows.Err(); err != nil {
		log.WithError(err).Error("Failed while iterating review rows")
		return nil, err
	}
	return reviews, nil
}
