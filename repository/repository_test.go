package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"venue-review-api/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var searchColumns = []string{"venue_id", "venue_name", "category_id", "city", "short_description",
	"latitude", "longitude", "mean_star_rating", "mode_cost_rating", "primary_photo"}

func TestVenueRepository_SearchVenues(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewVenueRepository(db)
	ctx := context.Background()

	t.Run("count omitted pages over the whole table", func(t *testing.T) {
		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(venue_id) FROM venue`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT venue.venue_id`)).
			WithArgs(2, 0).
			WillReturnRows(sqlmock.NewRows(searchColumns).
				AddRow(1, "Cafe", 2, "Christchurch", "Coffee", -43.5, 172.6, 4.5, 2, "a.jpg").
				AddRow(2, "Bar", 2, "Christchurch", "Drinks", -43.6, 172.7, nil, nil, nil))

		venues, err := repo.SearchVenues(ctx, &model.VenueSearchQuery{SortBy: model.SortByStarRating})
		require.NoError(t, err)
		require.Len(t, venues, 2)

		assert.Equal(t, 4.5, *venues[0].MeanStarRating)
		assert.Equal(t, 2, *venues[0].ModeCostRating)
		assert.Equal(t, "a.jpg", *venues[0].PrimaryPhoto)
		assert.Nil(t, venues[0].Distance)
		assert.Nil(t, venues[1].MeanStarRating)
		assert.Nil(t, venues[1].ModeCostRating)
		assert.Nil(t, venues[1].PrimaryPhoto)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("explicit count skips the count query and scans distance", func(t *testing.T) {
		q := &model.VenueSearchQuery{
			SortBy:      model.SortByDistance,
			Count:       intPtr(1),
			MyLatitude:  floatPtr(-43.5),
			MyLongitude: floatPtr(172.6),
		}
		dbMock.ExpectQuery(regexp.QuoteMeta(`AS distance FROM venue`)).
			WithArgs(-43.5, 172.6, -43.5, 1, 0).
			WillReturnRows(sqlmock.NewRows(append(searchColumns, "distance")).
				AddRow(1, "Cafe", 2, "Christchurch", "Coffee", -43.5, 172.6, 4.5, 2, "a.jpg", 0.0))

		venues, err := repo.SearchVenues(ctx, q)
		require.NoError(t, err)
		require.Len(t, venues, 1)
		assert.Equal(t, 0.0, *venues[0].Distance)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("no match is an empty list", func(t *testing.T) {
		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT venue.venue_id`)).
			WillReturnRows(sqlmock.NewRows(searchColumns))

		venues, err := repo.SearchVenues(ctx, &model.VenueSearchQuery{SortBy: model.SortByStarRating, Count: intPtr(5)})
		require.NoError(t, err)
		assert.NotNil(t, venues)
		assert.Empty(t, venues)
	})
}

func TestVenueRepository_GetVenueDetail_NotFound(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbMock.ExpectQuery(regexp.QuoteMeta(`WHERE venue.venue_id = $1`)).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	_, err = NewVenueRepository(db).GetVenueDetail(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestVenueRepository_UpdateVenue(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewVenueRepository(db)

	t.Run("writes only given fields", func(t *testing.T) {
		dbMock.ExpectExec(regexp.QuoteMeta(`UPDATE venue SET venue_name = $1, latitude = $2 WHERE venue_id = $3`)).
			WithArgs("New name", 10.5, 4).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateVenue(context.Background(), 4, model.VenueUpdate{Name: strPtr("New name"), Latitude: floatPtr(10.5)})
		assert.NoError(t, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("empty update runs nothing", func(t *testing.T) {
		assert.NoError(t, repo.UpdateVenue(context.Background(), 4, model.VenueUpdate{}))
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestVenueRepository_CreateVenue(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	added := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	venue := &model.Venue{Name: "Cafe", CategoryID: 1, City: "Christchurch", Address: "1 Main St",
		Latitude: -43.5, Longitude: 172.6, AdminID: 5}

	dbMock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO venue`)).
		WithArgs(5, "Cafe", 1, "Christchurch", "", "", "1 Main St", -43.5, 172.6).
		WillReturnRows(sqlmock.NewRows([]string{"venue_id", "date_added"}).AddRow(11, added))

	require.NoError(t, NewVenueRepository(db).CreateVenue(context.Background(), venue))
	assert.Equal(t, 11, venue.ID)
	assert.Equal(t, added, venue.DateAdded)
}

func TestReviewRepository_ListByAuthor(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	posted := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	cols := []string{"review_author_id", "username", "review_body", "star_rating", "cost_rating",
		"time_posted", "venue_id", "venue_name", "category_name", "city", "short_description", "photo_filename"}
	dbMock.ExpectQuery(regexp.QuoteMeta(`WHERE review.review_author_id = $1 ORDER BY review.time_posted DESC`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(7, "kim", "Great", 5, 2, posted, 3, "Cafe", "Cafes", "Christchurch", "Coffee", nil))

	reviews, err := NewReviewRepository(db).ListByAuthor(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "kim", reviews[0].AuthorUsername)
	assert.Nil(t, reviews[0].PrimaryPhoto)
	assert.Equal(t, posted, reviews[0].TimePosted)
}

func TestPhotoRepository_InsertWithinTransaction(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPhotoRepository(db)
	ctx := context.Background()

	dbMock.ExpectBegin()
	dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM venue_photo WHERE venue_id = $1 AND is_primary`)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	dbMock.ExpectExec(regexp.QuoteMeta(`UPDATE venue_photo SET is_primary = FALSE`)).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectExec(regexp.QuoteMeta(`INSERT INTO venue_photo`)).
		WithArgs(3, "b.png", "Front", true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	hasPrimary, err := repo.HasPrimary(ctx, tx, 3)
	require.NoError(t, err)
	assert.True(t, hasPrimary)
	require.NoError(t, repo.ClearPrimary(ctx, tx, 3))
	require.NoError(t, repo.Insert(ctx, tx, &model.VenuePhoto{VenueID: 3, PhotoFilename: "b.png", PhotoDescription: "Front", IsPrimary: true}))
	require.NoError(t, tx.Commit())
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestTokenRepository(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTokenRepository(db)
	ctx := context.Background()

	t.Run("find", func(t *testing.T) {
		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT user_id FROM users WHERE auth_token = $1`)).
			WithArgs("tok").
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(4))
		id, err := repo.FindUserIDByToken(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, 4, id)
	})

	t.Run("unknown token", func(t *testing.T) {
		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT user_id FROM users WHERE auth_token = $1`)).
			WithArgs("nope").
			WillReturnError(sql.ErrNoRows)
		_, err := repo.FindUserIDByToken(ctx, "nope")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("clear", func(t *testing.T) {
		dbMock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET auth_token = NULL WHERE user_id = $1`)).
			WithArgs(4).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.ClearToken(ctx, 4))
	})

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})
	foreign := &pq.Error{Code: "23503"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.True(t, IsForeignKeyViolation(foreign))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}
