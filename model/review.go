// file: model/review.go

package model

import "time"

// Review is a row of the review table.
type Review struct {
	VenueID    int
	AuthorID   int
	ReviewBody string
	StarRating int
	CostRating int
	TimePosted time.Time
}

// NewReview is the validated body of POST /venues/{id}/reviews.
type NewReview struct {
	ReviewBody string
	StarRating int
	CostRating int
}

// ReviewRow is the flat result of joining a review with its author, venue and primary photo.
type ReviewRow struct {
	AuthorID         int
	AuthorUsername   string
	ReviewBody       string
	StarRating       int
	CostRating       int
	TimePosted       time.Time
	VenueID          int
	VenueName        string
	CategoryName     string
	City             string
	ShortDescription string
	PrimaryPhoto     *string
}

// ReviewAuthor is the author nested inside a review.
type ReviewAuthor struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
}

// ReviewVenue is the venue nested inside a review.
type ReviewVenue struct {
	VenueID          int     `json:"venueId"`
	VenueName        string  `json:"venueName"`
	CategoryName     string  `json:"categoryName"`
	City             string  `json:"city"`
	ShortDescription string  `json:"shortDescription"`
	PrimaryPhoto     *string `json:"primaryPhoto"`
}

// ReviewDetail is one entry of a review listing.
type ReviewDetail struct {
	ReviewAuthor ReviewAuthor `json:"reviewAuthor"`
	ReviewBody   string       `json:"reviewBody"`
	StarRating   int          `json:"starRating"`
	CostRating   int          `json:"costRating"`
	TimePosted   time.Time    `json:"timePosted"`
	Venue        ReviewVenue  `json:"venue"`
}
