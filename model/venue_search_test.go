package model

import (
	"testing"

	"venue-review-api/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVenueSearchQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q, err := ParseVenueSearchQuery(map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, 0, q.StartIndex)
		assert.Nil(t, q.Count)
		assert.Equal(t, SortByStarRating, q.SortBy)
		assert.False(t, q.ReverseSort)
		assert.False(t, q.HasLocation())
		assert.Nil(t, q.City)
		assert.Nil(t, q.MinStarRating)
	})

	t.Run("all filters", func(t *testing.T) {
		q, err := ParseVenueSearchQuery(map[string]any{
			"startIndex":    "5",
			"count":         "10",
			"city":          "Christchurch",
			"q":             "cafe",
			"categoryId":    "2",
			"minStarRating": "3",
			"maxCostRating": "2",
			"adminId":       "7",
			"sortBy":        "COST_RATING",
			"reverseSort":   "true",
			"myLatitude":    "-43.5",
			"myLongitude":   "172.6",
		})
		require.NoError(t, err)
		assert.Equal(t, 5, q.StartIndex)
		assert.Equal(t, 10, *q.Count)
		assert.Equal(t, "Christchurch", *q.City)
		assert.Equal(t, "cafe", *q.Q)
		assert.Equal(t, 2, *q.CategoryID)
		assert.Equal(t, 3, *q.MinStarRating)
		assert.Equal(t, 2, *q.MaxCostRating)
		assert.Equal(t, 7, *q.AdminID)
		assert.Equal(t, SortByCostRating, q.SortBy)
		assert.True(t, q.ReverseSort)
		assert.True(t, q.HasLocation())
	})

	t.Run("distance without coordinates", func(t *testing.T) {
		_, err := ParseVenueSearchQuery(map[string]any{"sortBy": "DISTANCE"})
		var vErr *schema.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "sortBy", vErr.Field)
	})

	t.Run("distance with one coordinate", func(t *testing.T) {
		_, err := ParseVenueSearchQuery(map[string]any{"sortBy": "DISTANCE", "myLatitude": "10"})
		assert.Error(t, err)
	})

	t.Run("latitude without longitude", func(t *testing.T) {
		_, err := ParseVenueSearchQuery(map[string]any{"myLatitude": "10"})
		var vErr *schema.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "myLatitude", vErr.Field)
	})

	t.Run("longitude without latitude", func(t *testing.T) {
		_, err := ParseVenueSearchQuery(map[string]any{"myLongitude": "10"})
		assert.Error(t, err)
	})

	t.Run("distance with both coordinates", func(t *testing.T) {
		q, err := ParseVenueSearchQuery(map[string]any{"sortBy": "DISTANCE", "myLatitude": "10", "myLongitude": "20"})
		require.NoError(t, err)
		assert.Equal(t, SortByDistance, q.SortBy)
		assert.Equal(t, 10.0, *q.MyLatitude)
		assert.Equal(t, 20.0, *q.MyLongitude)
	})

	t.Run("latitude is bounded to 90 degrees", func(t *testing.T) {
		_, err := ParseVenueSearchQuery(map[string]any{"myLatitude": "120", "myLongitude": "0"})
		assert.EqualError(t, err, "myLatitude: value is too large")

		q, err := ParseVenueSearchQuery(map[string]any{"myLatitude": "0", "myLongitude": "179.9"})
		require.NoError(t, err)
		assert.True(t, q.HasLocation())
	})

	t.Run("out of range rating", func(t *testing.T) {
		_, err := ParseVenueSearchQuery(map[string]any{"minStarRating": "6"})
		assert.Error(t, err)
		_, err = ParseVenueSearchQuery(map[string]any{"maxCostRating": "-1"})
		assert.Error(t, err)
	})

	t.Run("count must be positive", func(t *testing.T) {
		_, err := ParseVenueSearchQuery(map[string]any{"count": "0"})
		assert.Error(t, err)
	})

	t.Run("count beyond the int range is rejected", func(t *testing.T) {
		_, err := ParseVenueSearchQuery(map[string]any{"count": "99999999999999999999"})
		assert.EqualError(t, err, "count: value is too large")
	})

	t.Run("unknown sort", func(t *testing.T) {
		_, err := ParseVenueSearchQuery(map[string]any{"sortBy": "NAME"})
		assert.Error(t, err)
	})
}

func TestVenueUpdateFromValues(t *testing.T) {
	v, err := schema.Validate(map[string]any{"city": "Auckland", "latitude": "-36.8"}, VenueUpdateSchema)
	require.NoError(t, err)

	u := NewVenueUpdateFromValues(v)
	assert.False(t, u.IsEmpty())
	assert.Equal(t, "Auckland", *u.City)
	assert.Equal(t, -36.8, *u.Latitude)
	assert.Nil(t, u.Name)

	empty, err := schema.Validate(map[string]any{}, VenueUpdateSchema)
	require.NoError(t, err)
	assert.True(t, NewVenueUpdateFromValues(empty).IsEmpty())
}
