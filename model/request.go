// file: model/request.go

package model

import "venue-review-api/schema"

// AuthHeader is the header carrying the session token.
const AuthHeader = "X-Authorization"

// TokenSchema validates the lower-cased auth header.
var TokenSchema = schema.Schema{
	"x-authorization": schema.String().NotEmpty(),
}

// IDSchema validates an {id} path segment.
var IDSchema = schema.Schema{
	"id": schema.Integer().AtLeast(0),
}

// PhotoPathSchema validates {id}/photos/{photoFilename} path segments.
var PhotoPathSchema = schema.Schema{
	"id":            schema.Integer().AtLeast(0),
	"photoFilename": schema.String().NotEmpty(),
}

// RegisterSchema defines the body of POST /users.
var RegisterSchema = schema.Schema{
	"username":   schema.String().NotEmpty(),
	"email":      schema.String().NotEmpty().IsEmail(),
	"givenName":  schema.String().NotEmpty(),
	"familyName": schema.String().NotEmpty(),
	"password":   schema.String().NotEmpty(),
}

// LoginSchema defines the body of POST /users/login. One of username or email must be given.
var LoginSchema = schema.Schema{
	"username": schema.String().NotEmpty().Optional(),
	"email":    schema.String().NotEmpty().Optional(),
	"password": schema.String().NotEmpty(),
}

// UserUpdateSchema defines the body of PATCH /users/{id}.
var UserUpdateSchema = schema.Schema{
	"givenName":  schema.String().NotEmpty().Optional(),
	"familyName": schema.String().NotEmpty().Optional(),
	"password":   schema.String().NotEmpty().Optional(),
}

// VenueCreateSchema defines the body of POST /venues.
var VenueCreateSchema = schema.Schema{
	"venueName":        schema.String().NotEmpty(),
	"categoryId":       schema.Integer().AtLeast(0),
	"city":             schema.String().NotEmpty(),
	"shortDescription": schema.String(),
	"longDescription":  schema.String(),
	"address":          schema.String().NotEmpty(),
	"latitude":         schema.Number().Between(-90, 90),
	"longitude":        schema.Number().Between(-180, 180),
}

// VenueUpdateSchema defines the body of PATCH /venues/{id}.
var VenueUpdateSchema = schema.Schema{
	"venueName":        schema.String().NotEmpty().Optional(),
	"categoryId":       schema.Integer().AtLeast(0).Optional(),
	"city":             schema.String().NotEmpty().Optional(),
	"shortDescription": schema.String().Optional(),
	"longDescription":  schema.String().Optional(),
	"address":          schema.String().NotEmpty().Optional(),
	"latitude":         schema.Number().Between(-90, 90).Optional(),
	"longitude":        schema.Number().Between(-180, 180).Optional(),
}

// ReviewCreateSchema defines the body of POST /venues/{id}/reviews.
var ReviewCreateSchema = schema.Schema{
	"reviewBody": schema.String().NotEmpty(),
	"starRating": schema.Integer().Between(1, 5),
	"costRating": schema.Integer().Between(0, 4),
}

// PhotoFormSchema defines the text fields of a venue photo upload.
var PhotoFormSchema = schema.Schema{
	"description": schema.String(),
	"makePrimary": schema.Boolean(),
}

// ContentTypeSchema validates the Content-Type of a raw profile photo upload.
var ContentTypeSchema = schema.Schema{
	"content-type": schema.String().NotEmpty(),
}

// NewVenueFromValues builds a venue from values validated against VenueCreateSchema.
func NewVenueFromValues(v schema.Values) Venue {
	venue := Venue{}
	venue.Name, _ = v.String("venueName")
	venue.CategoryID, _ = v.Int("categoryId")
	venue.City, _ = v.String("city")
	venue.ShortDescription, _ = v.String("shortDescription")
	venue.LongDescription, _ = v.String("longDescription")
	venue.Address, _ = v.String("address")
	venue.Latitude, _ = v.Float("latitude")
	venue.Longitude, _ = v.Float("longitude")
	return venue
}

// NewVenueUpdateFromValues builds a patch from values validated against VenueUpdateSchema.
func NewVenueUpdateFromValues(v schema.Values) VenueUpdate {
	return VenueUpdate{
		Name:             v.StringPtr("venueName"),
		CategoryID:       v.IntPtr("categoryId"),
		City:             v.StringPtr("city"),
		ShortDescription: v.StringPtr("shortDescription"),
		LongDescription:  v.StringPtr("longDescription"),
		Address:          v.StringPtr("address"),
		Latitude:         v.FloatPtr("latitude"),
		Longitude:        v.FloatPtr("longitude"),
	}
}

// NewUserUpdateFromValues builds a user patch from values validated against UserUpdateSchema.
func NewUserUpdateFromValues(v schema.Values) UserUpdate {
	return UserUpdate{
		GivenName:  v.StringPtr("givenName"),
		FamilyName: v.StringPtr("familyName"),
		Password:   v.StringPtr("password"),
	}
}
