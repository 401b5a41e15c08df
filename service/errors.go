package service

import "errors"

var (
	ErrUnauthenticated     = errors.New("authentication required")
	ErrInvalidCredentials  = errors.New("invalid username, email or password")
	ErrForbidden           = errors.New("you do not have permission to do this")
	ErrUserNotFound        = errors.New("user not found")
	ErrVenueNotFound       = errors.New("venue not found")
	ErrPhotoNotFound       = errors.New("photo not found")
	ErrDuplicateUser       = errors.New("username or email is already in use")
	ErrDuplicateReview     = errors.New("you have already reviewed this venue")
	ErrOwnVenueReview      = errors.New("you cannot review a venue you administer")
	ErrUnknownCategory     = errors.New("category does not exist")
	ErrUnsupportedFiletype = errors.New("unsupported filetype")
	ErrNoChanges           = errors.New("no changes were provided")
)
