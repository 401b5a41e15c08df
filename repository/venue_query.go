// file: repository/venue_query.go

package repository

import (
	"strings"

	"venue-review-api/model"
)

// Great-circle distance in km, using 111.111 km per degree of arc.
// The three markers bind myLatitude, myLongitude, myLatitude.
const distanceColumn = `111.111 * DEGREES(ACOS(LEAST(` +
	`COS(RADIANS(?)) * COS(RADIANS(venue.latitude)) * COS(RADIANS(? - venue.longitude)) + ` +
	`SIN(RADIANS(?)) * SIN(RADIANS(venue.latitude)), 1.0))) AS distance`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BuildVenueSearchQuery assembles the venue search statement for q. When q.Count
// is nil the page size is totalVenues, so every venue from StartIndex onward is returned.
//
// Ordering is descending unless ReverseSort is set. Venues without a value for
// the ordering column sort last either way.
func BuildVenueSearchQuery(q *model.VenueSearchQuery, totalVenues int) (string, []any) {
	b := newSelect("venue").
		Column("venue.venue_id").
		Column("venue.venue_name").
		Column("venue.category_id").
		Column("venue.city").
		Column("venue.short_description").
		Column("venue.latitude").
		Column("venue.longitude").
		Column("AVG(review.star_rating) AS mean_star_rating").
		Column("mode_cost_rating.mode_cost_rating AS mode_cost_rating").
		Column("venue_photo.photo_filename AS primary_photo")

	if q.HasLocation() {
		b.Column(distanceColumn, *q.MyLatitude, *q.MyLongitude, *q.MyLatitude)
	}

	b.Join("LEFT JOIN review ON review.reviewed_venue_id = venue.venue_id").
		Join("LEFT JOIN venue_photo ON venue_photo.venue_id = venue.venue_id AND venue_photo.is_primary").
		Join("LEFT JOIN mode_cost_rating ON mode_cost_rating.venue_id = venue.venue_id")

	if q.City != nil {
		b.Where("venue.city = ?", *q.City)
	}
	if q.Q != nil {
		b.Where("venue.venue_name LIKE ?", "%"+likeEscaper.Replace(*q.Q)+"%")
	}
	if q.CategoryID != nil {
		b.Where("venue.category_id = ?", *q.CategoryID)
	}
	if q.MaxCostRating != nil {
		b.Where("mode_cost_rating.mode_cost_rating <= ?", *q.MaxCostRating)
	}
	if q.AdminID != nil {
		b.Where("venue.admin_id = ?", *q.AdminID)
	}

	// AVG is always selected, so rows are always grouped per venue.
	b.GroupBy("venue.venue_id", "mode_cost_rating.mode_cost_rating", "venue_photo.photo_filename")

	if q.MinStarRating != nil {
		b.Having("AVG(review.star_rating) >= ?", *q.MinStarRating)
	}

	direction := "DESC"
	if q.ReverseSort {
		direction = "ASC"
	}
	b.OrderBy(sortColumn(q.SortBy)+" "+direction+" NULLS LAST", "venue.venue_id ASC")

	limit := totalVenues
	if q.Count != nil {
		limit = *q.Count
	}
	b.Limit(limit).Offset(q.StartIndex)

	return b.Build()
}

func sortColumn(s model.SortBy) string {
	switch s {
	case model.SortByCostRating:
		return "mode_cost_rating"
	case model.SortByDistance:
		return "distance"
	default:
		return "mean_star_rating"
	}
}
