// file: model/photo.go

package model

import "mime"

// VenuePhoto is a row of venue_photo.
type VenuePhoto struct {
	VenueID          int
	PhotoFilename    string
	PhotoDescription string
	IsPrimary        bool
}

// PhotoDetail is a photo as listed inside a venue detail.
type PhotoDetail struct {
	PhotoFilename    string `json:"photoFilename"`
	PhotoDescription string `json:"photoDescription"`
	IsPrimary        bool   `json:"isPrimary"`
}

// PhotoUpload describes an uploaded venue photo before it is stored.
type PhotoUpload struct {
	ContentType string
	Data        []byte
	Description string
	MakePrimary bool
}

// Image content types accepted for venue and profile photos, mapped to file extensions.
var PhotoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// PhotoExtension returns the file extension for a Content-Type header value.
// Parameters such as charset are ignored.
func PhotoExtension(contentType string) (string, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false
	}
	ext, ok := PhotoExtensions[mediaType]
	return ext, ok
}
