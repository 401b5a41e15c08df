// file: service/venue_service.go

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
	"venue-review-api/logger"
	"venue-review-api/metrics"
	"venue-review-api/model"
	"venue-review-api/repository"

	"github.com/sirupsen/logrus"
)

// VenueService handles venue search, detail, creation and editing, and serves
// categories through the cache when one is configured.
type VenueService struct {
	venues   repository.IVenueRepository
	photos   repository.IPhotoRepository
	cache    ICacheClient
	cacheTTL time.Duration
}

// NewVenueService creates a VenueService. cache may be nil.
func NewVenueService(venues repository.IVenueRepository, photos repository.IPhotoRepository, cache ICacheClient, cacheTTL time.Duration) *VenueService {
	return &VenueService{
		venues:   venues,
		photos:   photos,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (s *VenueService) Search(ctx context.Context, q *model.VenueSearchQuery) ([]*model.VenueSummary, error) {
	return s.venues.SearchVenues(ctx, q)
}

// Get returns the venue with its admin, category and photos.
func (s *VenueService) Get(ctx context.Context, venueID int) (*model.VenueDetail, error) {
	row, err := s.venues.GetVenueDetail(ctx, venueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	photos, err := s.photos.ListByVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	return toVenueDetail(row, photos), nil
}

// Create stores a venue administered by adminID.
func (s *VenueService) Create(ctx context.Context, adminID int, venue model.Venue) (*model.CreatedVenue, error) {
	venue.AdminID = adminID
	if err := s.venues.CreateVenue(ctx, &venue); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrUnknownCategory
		}
		return nil, err
	}
	logger.Log.WithFields(logrus.Fields{
		"venue_id": venue.ID,
		"admin_id": adminID,
	}).Info("Venue created")
	return &model.CreatedVenue{VenueID: venue.ID}, nil
}

// Update applies a patch to a venue administered by callerID.
func (s *VenueService) Update(ctx context.Context, callerID, venueID int, update model.VenueUpdate) error {
	if err := checkVenueAdmin(ctx, s.venues, callerID, venueID); err != nil {
		return err
	}
	if update.IsEmpty() {
		return ErrNoChanges
	}
	if err := s.venues.UpdateVenue(ctx, venueID, update); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return ErrUnknownCategory
		}
		return err
	}
	return nil
}

// ListCategories lists the venue categories using a cache-aside strategy.
func (s *VenueService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, categoriesCacheKey).Result(); err == nil {
			var categories []*model.Category
			if err := json.Unmarshal([]byte(cached), &categories); err == nil {
				metrics.RecordCacheLookup("categories", true)
				return categories, nil
			}
		}
		metrics.RecordCacheLookup("categories", false)
	}

	categories, err := s.venues.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(categories); err == nil {
			if err := s.cache.Set(ctx, categoriesCacheKey, data, s.cacheTTL).Err(); err != nil {
				logger.Log.WithError(err).Warn("Failed to cache categories")
			}
		}
	}
	return categories, nil
}

// checkVenueAdmin fails with ErrVenueNotFound or ErrForbidden unless callerID administers venueID.
func checkVenueAdmin(ctx context.Context, venues repository.IVenueRepository, callerID, venueID int) error {
	adminID, err := venues.GetAdminID(ctx, venueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	}
	if adminID != callerID {
		logger.Log.WithFields(logrus.Fields{
			"venue_id":  venueID,
			"caller_id": callerID,
		}).Warn("Permission denied for venue")
		return ErrForbidden
	}
	return nil
}
