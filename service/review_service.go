package service

import (
	"context"
	"database/sql"
	"errors"
	"venue-review-api/logger"
	"venue-review-api/model"
	"venue-review-api/repository"

	"github.com/sirupsen/logrus"
)

type ReviewService struct {
	reviews repository.IReviewRepository
	venues  repository.IVenueRepository
	users   repository.IUserRepository
}

func NewReviewService(reviews repository.IReviewRepository, venues repository.IVenueRepository, users repository.IUserRepository) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		venues:  venues,
		users:   users,
	}
}

// Create posts authorID's review of venueID. Each user may review a venue once,
// and never a venue they administer.
func (s *ReviewService) Create(ctx context.Context, authorID, venueID int, review model.NewReview) error {
	log := logger.Log.WithFields(logrus.Fields{
		"author_id": authorID,
		"venue_id":  venueID,
	})

	adminID, err := s.venues.GetAdminID(ctx, venueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	}
	if adminID == authorID {
		log.Warn("Venue admin tried to review their own venue")
		return ErrOwnVenueReview
	}

	reviewed, err := s.reviews.HasReviewed(ctx, authorID, venueID)
	if err != nil {
		return err
	}
	if reviewed {
		return ErrDuplicateReview
	}

	err = s.reviews.CreateReview(ctx, &model.Review{
		VenueID:    venueID,
		AuthorID:   authorID,
		ReviewBody: review.ReviewBody,
		StarRating: review.StarRating,
		CostRating: review.CostRating,
	})
	if err != nil {
		// a concurrent request may have won the race past HasReviewed
		if repository.IsUniqueViolation(err) {
			return ErrDuplicateReview
		}
		return err
	}

	log.Info("Review created")
	return nil
}

// ListForVenue returns the venue's reviews, newest first.
func (s *ReviewService) ListForVenue(ctx context.Context, venueID int) ([]*model.ReviewDetail, error) {
	exists, err := s.venues.VenueExists(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrVenueNotFound
	}
	rows, err := s.reviews.ListByVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	return toReviewDetails(rows), nil
}

// ListForUser returns the reviews written by userID, newest first.
func (s *ReviewService) ListForUser(ctx context.Context, userID int) ([]*model.ReviewDetail, error) {
	exists, err := s.users.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}
	rows, err := s.reviews.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toReviewDetails(rows), nil
}
