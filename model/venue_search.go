// file: model/venue_search.go

package model

import (
	"venue-review-api/schema"
)

// SortBy selects the ordering column of a venue search.
type SortBy string

const (
	SortByStarRating SortBy = "STAR_RATING"
	SortByCostRating SortBy = "COST_RATING"
	SortByDistance   SortBy = "DISTANCE"
)

// VenueSearchQuery is a normalized GET /venues query. Optional filters are nil when not given.
type VenueSearchQuery struct {
	StartIndex    int
	Count         *int
	City          *string
	Q             *string
	CategoryID    *int
	MinStarRating *int
	MaxCostRating *int
	AdminID       *int
	SortBy        SortBy
	ReverseSort   bool
	MyLatitude    *float64
	MyLongitude   *float64
}

// HasLocation reports whether both coordinates of the caller were given.
func (q *VenueSearchQuery) HasLocation() bool {
	return q.MyLatitude != nil && q.MyLongitude != nil
}

// VenueSearchSchema defines the GET /venues query string.
var VenueSearchSchema = schema.Schema{
	"startIndex":    schema.Integer().AtLeast(0).WithDefault(0),
	"count":         schema.Integer().AtLeast(1).Optional(),
	"city":          schema.String().Optional(),
	"q":             schema.String().Optional(),
	"categoryId":    schema.Integer().AtLeast(0).Optional(),
	"minStarRating": schema.Integer().Between(1, 5).Optional(),
	"maxCostRating": schema.Integer().Between(0, 4).Optional(),
	"adminId":       schema.Integer().AtLeast(0).Optional(),
	"sortBy": schema.String().
		In(string(SortByStarRating), string(SortByCostRating), string(SortByDistance)).
		WithDefault(string(SortByStarRating)),
	"reverseSort": schema.Boolean().WithDefault(false),
	"myLatitude":  schema.Number().Between(-90, 90).Optional(),
	"myLongitude": schema.Number().Between(-180, 180).Optional(),
}

// ParseVenueSearchQuery validates raw query inputs and applies the rules that
// span several fields: coordinates come in pairs, and DISTANCE ordering needs them.
func ParseVenueSearchQuery(inputs map[string]any) (*VenueSearchQuery, error) {
	v, err := schema.Validate(inputs, VenueSearchSchema)
	if err != nil {
		return nil, err
	}

	q := &VenueSearchQuery{
		City:          v.StringPtr("city"),
		Q:             v.StringPtr("q"),
		Count:         v.IntPtr("count"),
		CategoryID:    v.IntPtr("categoryId"),
		MinStarRating: v.IntPtr("minStarRating"),
		MaxCostRating: v.IntPtr("maxCostRating"),
		AdminID:       v.IntPtr("adminId"),
		MyLatitude:    v.FloatPtr("myLatitude"),
		MyLongitude:   v.FloatPtr("myLongitude"),
	}
	q.StartIndex, _ = v.Int("startIndex")
	q.ReverseSort, _ = v.Bool("reverseSort")
	sortBy, _ := v.String("sortBy")
	q.SortBy = SortBy(sortBy)

	if q.SortBy == SortByDistance && !q.HasLocation() {
		return nil, &schema.ValidationError{
			Field:  "sortBy",
			Reason: "sorting by DISTANCE requires both myLatitude and myLongitude",
		}
	}
	if (q.MyLatitude != nil) != (q.MyLongitude != nil) {
		return nil, &schema.ValidationError{
			Field:  "myLatitude",
			Reason: "myLatitude and myLongitude must be given together",
		}
	}
	return q, nil
}
