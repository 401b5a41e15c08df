package handler

import (
	"net/http"
	"venue-review-api/common"
	"venue-review-api/logger"
	"venue-review-api/model"

	"github.com/sirupsen/logrus"
)

type ReviewHandler struct {
	reviews ReviewService
}

func NewReviewHandler(reviews ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// CreateReview godoc
// @Summary      Review a venue
// @Description  A user may review a venue once and never their own venue.
// @Tags         reviews
// @Accept       json
// @Security     ApiKeyAuth
// @Param        id    path  int     true  "Venue ID"
// @Param        body  body  object  true  "reviewBody, starRating (1-5), costRating (0-4)"
// @Success      201
// @Failure      400  {object}  common.AppError
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/venues/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) *common.AppError {
	venueID, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}
	v, appErr := decodeBody(r, model.ReviewCreateSchema)
	if appErr != nil {
		return appErr
	}

	var review model.NewReview
	review.ReviewBody, _ = v.String("reviewBody")
	review.StarRating, _ = v.Int("starRating")
	review.CostRating, _ = v.Int("costRating")

	logger.Log.WithFields(logrus.Fields{
		"venue_id":  venueID,
		"author_id": userID,
	}).Info("Create review request received")

	if err := h.reviews.Create(r.Context(), userID, venueID, review); err != nil {
		return fromServiceError(err)
	}
	w.WriteHeader(http.StatusCreated)
	return nil
}

// ListVenueReviews godoc
// @Summary      List a venue's reviews, newest first
// @Tags         reviews
// @Produce      json
// @Param        id   path      int  true  "Venue ID"
// @Success      200  {array}   model.ReviewDetail
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/venues/{id}/reviews [get]
func (h *ReviewHandler) ListVenueReviews(w http.ResponseWriter, r *http.Request) *common.AppError {
	venueID, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}
	reviews, err := h.reviews.ListForVenue(r.Context(), venueID)
	if err != nil {
		return fromServiceError(err)
	}
	common.WriteJSON(w, http.StatusOK, reviews)
	return nil
}

// ListUserReviews godoc
// @Summary      List the reviews a user wrote, newest first
// @Tags         reviews
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {array}   model.ReviewDetail
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/users/{id}/reviews [get]
func (h *ReviewHandler) ListUserReviews(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}
	reviews, err := h.reviews.ListForUser(r.Context(), userID)
	if err != nil {
		return fromServiceError(err)
	}
	common.WriteJSON(w, http.StatusOK, reviews)
	return nil
}
