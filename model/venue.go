// file: model/venue.go

package model

import "time"

// Venue is a row of the venue table.
type Venue struct {
	ID               int       `json:"venueId"`
	Name             string    `json:"venueName"`
	CategoryID       int       `json:"categoryId"`
	City             string    `json:"city"`
	ShortDescription string    `json:"shortDescription"`
	LongDescription  string    `json:"longDescription"`
	Address          string    `json:"address"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	AdminID          int       `json:"adminId"`
	DateAdded        time.Time `json:"dateAdded"`
}

// VenueUpdate holds the optional fields of a venue patch.
type VenueUpdate struct {
	Name             *string
	CategoryID       *int
	City             *string
	ShortDescription *string
	LongDescription  *string
	Address          *string
	Latitude         *float64
	Longitude        *float64
}

// IsEmpty reports whether the patch changes nothing.
func (u VenueUpdate) IsEmpty() bool {
	return u.Name == nil && u.CategoryID == nil && u.City == nil && u.ShortDescription == nil &&
		u.LongDescription == nil && u.Address == nil && u.Latitude == nil && u.Longitude == nil
}

// VenueSummary is one row of a venue search.
type VenueSummary struct {
	VenueID          int      `json:"venueId"`
	VenueName        string   `json:"venueName"`
	CategoryID       int      `json:"categoryId"`
	City             string   `json:"city"`
	ShortDescription string   `json:"shortDescription"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	MeanStarRating   *float64 `json:"meanStarRating"`
	ModeCostRating   *int     `json:"modeCostRating"`
	PrimaryPhoto     *string  `json:"primaryPhoto"`
	Distance         *float64 `json:"distance,omitempty"`
}

// VenueDetailRow is the flat result of joining a venue with its admin and category.
type VenueDetailRow struct {
	VenueID             int
	VenueName           string
	AdminID             int
	AdminUsername       string
	CategoryID          int
	CategoryName        string
	CategoryDescription string
	City                string
	ShortDescription    string
	LongDescription     string
	DateAdded           time.Time
	Address             string
	Latitude            float64
	Longitude           float64
}

// VenueAdmin is the admin nested inside a venue detail.
type VenueAdmin struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
}

// VenueDetail is the response of GET /venues/{id}.
type VenueDetail struct {
	VenueName        string        `json:"venueName"`
	Admin            VenueAdmin    `json:"admin"`
	Category         Category      `json:"category"`
	City             string        `json:"city"`
	ShortDescription string        `json:"shortDescription"`
	LongDescription  string        `json:"longDescription"`
	DateAdded        time.Time     `json:"dateAdded"`
	Address          string        `json:"address"`
	Latitude         float64       `json:"latitude"`
	Longitude        float64       `json:"longitude"`
	Photos           []PhotoDetail `json:"photos"`
}

// Category is a row of venue_category.
type Category struct {
	CategoryID          int    `json:"categoryId"`
	CategoryName        string `json:"categoryName"`
	CategoryDescription string `json:"categoryDescription"`
}

// CreatedVenue is returned when a venue is created.
type CreatedVenue struct {
	VenueID int `json:"venueId"`
}
