// file: service/mapper.go

package service

import "venue-review-api/model"

// toVenueDetail nests a flat venue row and its photos into the GET /venues/{id} shape.
func toVenueDetail(row *model.VenueDetailRow, photos []*model.VenuePhoto) *model.VenueDetail {
	detail := &model.VenueDetail{
		VenueName: row.VenueName,
		Admin: model.VenueAdmin{
			UserID:   row.AdminID,
			Username: row.AdminUsername,
		},
		Category: model.Category{
			CategoryID:          row.CategoryID,
			CategoryName:        row.CategoryName,
			CategoryDescription: row.CategoryDescription,
		},
		City:             row.City,
		ShortDescription: row.ShortDescription,
		LongDescription:  row.LongDescription,
		DateAdded:        row.DateAdded,
		Address:          row.Address,
		Latitude:         row.Latitude,
		Longitude:        row.Longitude,
		Photos:           make([]model.PhotoDetail, 0, len(photos)),
	}
	for _, p := range photos {
		detail.Photos = append(detail.Photos, model.PhotoDetail{
			PhotoFilename:    p.PhotoFilename,
			PhotoDescription: p.PhotoDescription,
			IsPrimary:        p.IsPrimary,
		})
	}
	return detail
}

func toReviewDetails(rows []*model.ReviewRow) []*model.ReviewDetail {
	reviews := make([]*model.ReviewDetail, 0, len(rows))
	for _, r := range rows {
		reviews = append(reviews, &model.ReviewDetail{
			ReviewAuthor: model.ReviewAuthor{
				UserID:   r.AuthorID,
				Username: r.AuthorUsername,
			},
			ReviewBody: r.ReviewBody,
			StarRating: r.StarRating,
			CostRating: r.CostRating,
			TimePosted: r.TimePosted,
			Venue: model.ReviewVenue{
				VenueID:          r.VenueID,
				VenueName:        r.VenueName,
				CategoryName:     r.CategoryName,
				City:             r.City,
				ShortDescription: r.ShortDescription,
				PrimaryPhoto:     r.PrimaryPhoto,
			},
		})
	}
	return reviews
}

// toUserProfile hides the email unless the profile belongs to the viewer.
func toUserProfile(user *model.User, viewerID *int) *model.UserProfile {
	profile := &model.UserProfile{
		Username:   user.Username,
		GivenName:  user.GivenName,
		FamilyName: user.FamilyName,
	}
	if viewerID != nil && *viewerID == user.ID {
		profile.Email = user.Email
	}
	return profile
}
