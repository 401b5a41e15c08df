// file: model/user.go

package model

// User is a registered account. The password hash and token never leave the server.
type User struct {
	ID                   int     `json:"userId"`
	Username             string  `json:"username"`
	Email                string  `json:"email"`
	GivenName            string  `json:"givenName"`
	FamilyName           string  `json:"familyName"`
	PasswordHash         string  `json:"-"`
	AuthToken            *string `json:"-"`
	ProfilePhotoFilename *string `json:"-"`
}

// UserProfile is the public view of a user. Email is only filled in for the user themselves.
type UserProfile struct {
	Username   string `json:"username"`
	Email      string `json:"email,omitempty"`
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
}

// UserUpdate carries the fields a user may change about themselves.
type UserUpdate struct {
	GivenName  *string
	FamilyName *string
	Password   *string
}

// IsEmpty reports whether no field was given.
func (u UserUpdate) IsEmpty() bool {
	return u.GivenName == nil && u.FamilyName == nil && u.Password == nil
}

// Session is returned by a successful login.
type Session struct {
	UserID int    `json:"userId"`
	Token  string `json:"token"`
}

// CreatedUser is returned when a user registers.
type CreatedUser struct {
	UserID int `json:"userId"`
}
