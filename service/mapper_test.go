package service

import (
	"encoding/json"
	"testing"
	"time"
	"venue-review-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToReviewDetails_JSONShape(t *testing.T) {
	posted := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	details := toReviewDetails([]*model.ReviewRow{{
		AuthorID: 8, AuthorUsername: "kim", ReviewBody: "Lovely", StarRating: 5, CostRating: 2,
		TimePosted: posted, VenueID: 3, VenueName: "Cafe", CategoryName: "Cafes",
		City: "Christchurch", ShortDescription: "Coffee",
	}})

	body, err := json.Marshal(details)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"reviewAuthor": {"userId": 8, "username": "kim"},
		"reviewBody": "Lovely",
		"starRating": 5,
		"costRating": 2,
		"timePosted": "2024-01-02T03:04:05Z",
		"venue": {
			"venueId": 3,
			"venueName": "Cafe",
			"categoryName": "Cafes",
			"city": "Christchurch",
			"shortDescription": "Coffee",
			"primaryPhoto": null
		}
	}]`, string(body))
}

func TestToReviewDetails_Empty(t *testing.T) {
	body, err := json.Marshal(toReviewDetails(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}
