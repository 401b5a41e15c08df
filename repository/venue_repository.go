package repository

import (
	"context"
	"database/sql"
	"venue-review-api/logger"
	"venue-review-api/model"

	"github.com/sirupsen/logrus"
)

// IVenueRepository defines the contract for venue and category database operations.
type IVenueRepository interface {
	CountVenues(ctx context.Context) (int, error)
	SearchVenues(ctx context.Context, q *model.VenueSearchQuery) ([]*model.VenueSummary, error)
	GetVenueDetail(ctx context.Context, venueID int) (*model.VenueDetailRow, error)
	GetAdminID(ctx context.Context, venueID int) (int, error)
	VenueExists(ctx context.Context, venueID int) (bool, error)
	CreateVenue(ctx context.Context, venue *model.Venue) error
	UpdateVenue(ctx context.Context, venueID int, update model.VenueUpdate) error
	ListCategories(ctx context.Context) ([]*model.Category, error)
}

type VenueRepository struct {
	DB *sql.DB
}

func NewVenueRepository(db *sql.DB) *VenueRepository {
	return &VenueRepository{DB: db}
}

// CountVenues returns the number of rows in the venue table.
func (r *VenueRepository) CountVenues(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(venue_id) FROM venue`).Scan(&count)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to count venues")
		return 0, err
	}
	return count, nil
}

// SearchVenues runs a filtered, sorted and paginated venue search.
func (r *VenueRepository) SearchVenues(ctx context.Context, q *model.VenueSearchQuery) ([]*model.VenueSummary, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"start_index":  q.StartIndex,
		"sort_by":      q.SortBy,
		"reverse_sort": q.ReverseSort,
		"has_location": q.HasLocation(),
	})

	total := 0
	if q.Count == nil {
		var err error
		if total, err = r.CountVenues(ctx); err != nil {
			return nil, err
		}
	}

	query, args := BuildVenueSearchQuery(q, total)
	log.WithField("arg_count", len(args)).Info("Executing venue search query")

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.WithError(err).Error("Failed to execute venue search query")
		return nil, err
	}
	defer rows.Close()

	venues := []*model.VenueSummary{}
	for rows.Next() {
		var (
			v        model.VenueSummary
			mean     sql.NullFloat64
			mode     sql.NullInt64
			photo    sql.NullString
			distance sql.NullFloat64
		)
		dest := []any{&v.VenueID, &v.VenueName, &v.CategoryID, &v.City, &v.ShortDescription,
			&v.Latitude, &v.Longitude, &mean, &mode, &photo}
		if q.HasLocation() {
			dest = append(dest, &distance)
		}
		if err := rows.Scan(dest...); err != nil {
			log.WithError(err).Error("Failed to scan venue search row")
			return nil, err
		}
		if mean.Valid {
			v.MeanStarRating = &mean.Float64
		}
		if mode.Valid {
			m := int(mode.Int64)
			v.ModeCostRating = &m
		}
		if photo.Valid {
			v.PrimaryPhoto = &photo.String
		}
		if distance.Valid {
			v.Distance = &distance.Float64
		}
		venues = append(venues, &v)
	}
	if err := rows.Err(); err != nil {
		log.WithError(err).Error("Failed while iterating venue search rows")
		return nil, err
	}
	return venues, nil
}

// GetVenueDetail retrieves one venue joined with its admin and category.
// It returns sql.ErrNoRows when the venue does not exist.
func (r *VenueRepository) GetVenueDetail(ctx context.Context, venueID int) (*model.VenueDetailRow, error) {
	log := logger.Log.WithField("venue_id", venueID)
	log.Info("Executing query to get venue detail")

	query := `
		SELECT venue.venue_id, venue.venue_name, venue.admin_id, users.username,
			venue.category_id, venue_category.category_name, venue_category.category_description,
			venue.city, venue.short_description, venue.long_description, venue.date_added,
			venue.address, venue.latitude, venue.longitude
		FROM venue
		JOIN users ON users.user_id = venue.admin_id
		JOIN venue_category ON venue_category.category_id = venue.category_id
		WHERE venue.venue_id = $1`

	row := &model.VenueDetailRow{}
	err := r.DB.QueryRowContext(ctx, query, venueID).Scan(
		&row.VenueID, &row.VenueName, &row.AdminID, &row.AdminUsername,
		&row.CategoryID, &row.CategoryName, &row.CategoryDescription,
		&row.City, &row.ShortDescription, &row.LongDescription, &row.DateAdded,
		&row.Address, &row.Latitude, &row.Longitude,
	)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute get venue detail query")
		}
		return nil, err
	}
	return row, nil
}

// GetAdminID returns the id of the user who administers the venue, or sql.ErrNoRows.
func (r *VenueRepository) GetAdminID(ctx context.Context, venueID int) (int, error) {
	var adminID int
	err := r.DB.QueryRowContext(ctx, `SELECT admin_id FROM venue WHERE venue_id = $1`, venueID).Scan(&adminID)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).WithField("venue_id", venueID).Error("Failed to get venue admin")
		}
		return 0, err
	}
	return adminID, nil
}

// VenueExists counts the venue rows with the given id.
func (r *VenueRepository) VenueExists(ctx context.Context, venueID int) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(venue_id) FROM venue WHERE venue_id = $1`, venueID).Scan(&count)
	if err != nil {
		logger.Log.WithError(err).WithField("venue_id", venueID).Error("Failed to check venue existence")
		return false, err
	}
	return count > 0, nil
}

// CreateVenue adds a new venue and fills in its generated id and date.
func (r *VenueRepository) CreateVenue(ctx context.Context, venue *model.Venue) error {
	log := logger.Log.WithFields(logrus.Fields{
		"admin_id":    venue.AdminID,
		"category_id": venue.CategoryID,
		"city":        venue.City,
	})
	log.Info("Executing query to create a new venue")

	query := `
		INSERT INTO venue (admin_id, venue_name, category_id, city, short_description,
			long_description, address, latitude, longitude, date_added)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING venue_id, date_added`
	err := r.DB.QueryRowContext(ctx, query,
		venue.AdminID, venue.Name, venue.CategoryID, venue.City, venue.ShortDescription,
		venue.LongDescription, venue.Address, venue.Latitude, venue.Longitude,
	).Scan(&venue.ID, &venue.DateAdded)
	if err != nil {
		log.WithError(err).Error("Failed to execute create venue query")
		return err
	}
	return nil
}

// UpdateVenue writes the fields present in update.
func (r *VenueRepository) UpdateVenue(ctx context.Context, venueID int, update model.VenueUpdate) error {
	log := logger.Log.WithField("venue_id", venueID)

	b := newUpdate("venue")
	if update.Name != nil {
		b.Set("venue_name", *update.Name)
	}
	if update.CategoryID != nil {
		b.Set("category_id", *update.CategoryID)
	}
	if update.City != nil {
		b.Set("city", *update.City)
	}
	if update.ShortDescription != nil {
		b.Set("short_description", *update.ShortDescription)
	}
	if update.LongDescription != nil {
		b.Set("long_description", *update.LongDescription)
	}
	if update.Address != nil {
		b.Set("address", *update.Address)
	}
	if update.Latitude != nil {
		b.Set("latitude", *update.Latitude)
	}
	if update.Longitude != nil {
		b.Set("longitude", *update.Longitude)
	}
	if b.Empty() {
		return nil
	}
	b.Where("venue_id = ?", venueID)

	query, args := b.Build()
	log.Info("Executing query to update venue")
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		log.WithError(err).Error("Failed to execute update venue query")
		return err
	}
	return nil
}

// ListCategories retrieves every venue category.
func (r *VenueRepository) ListCategories(ctx context.Context) ([]*model.Category, error) {
	log := logger.Log
	log.Info("Executing query to get all categories")

	query := `SELECT category_id, category_name, category_description FROM venue_category ORDER BY category_id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for categories")
		return nil, err
	}
	defer rows.Close()

	categories := []*model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.CategoryID, &c.CategoryName, &c.CategoryDescription); err != nil {
			log.WithError(err).Error("Failed to scan category row")
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}
