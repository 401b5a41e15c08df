package handler

import (
	"context"
	"venue-review-api/model"

	"github.com/spf13/afero"
)

// The handlers depend on these views of the service layer.

type Authenticator interface {
	Authorize(ctx context.Context, token string) (int, error)
}

type AuthService interface {
	Authenticator
	Login(ctx context.Context, username, email *string, password string) (*model.Session, error)
	Logout(ctx context.Context, userID int) error
}

type UserService interface {
	Register(ctx context.Context, user model.User, password string) (*model.CreatedUser, error)
	GetProfile(ctx context.Context, id int, viewerID *int) (*model.UserProfile, error)
	Update(ctx context.Context, callerID, id int, update model.UserUpdate) error
	PutPhoto(ctx context.Context, callerID, id int, contentType string, data []byte) (bool, error)
	OpenPhoto(ctx context.Context, id int) (afero.File, string, error)
	DeletePhoto(ctx context.Context, callerID, id int) error
}

type VenueService interface {
	Search(ctx context.Context, q *model.VenueSearchQuery) ([]*model.VenueSummary, error)
	Get(ctx context.Context, venueID int) (*model.VenueDetail, error)
	Create(ctx context.Context, adminID int, venue model.Venue) (*model.CreatedVenue, error)
	Update(ctx context.Context, callerID, venueID int, update model.VenueUpdate) error
	ListCategories(ctx context.Context) ([]*model.Category, error)
}

type PhotoService interface {
	Upload(ctx context.Context, callerID, venueID int, upload model.PhotoUpload) (string, error)
	Open(ctx context.Context, venueID int, filename string) (afero.File, string, error)
	Delete(ctx context.Context, callerID, venueID int, filename string) error
	SetPrimary(ctx context.Context, callerID, venueID int, filename string) error
}

type ReviewService interface {
	Create(ctx context.Context, authorID, venueID int, review model.NewReview) error
	ListForVenue(ctx context.Context, venueID int) ([]*model.ReviewDetail, error)
	ListForUser(ctx context.Context, userID int) ([]*model.ReviewDetail, error)
}
