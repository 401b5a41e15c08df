package handler

import (
	"net/http"
	"venue-review-api/common"
	"venue-review-api/logger"
	"venue-review-api/model"
	"venue-review-api/schema"

	"github.com/sirupsen/logrus"
)

type VenueHandler struct {
	venues VenueService
}

func NewVenueHandler(venues VenueService) *VenueHandler {
	return &VenueHandler{venues: venues}
}

// SearchVenues godoc
// @Summary      Search venues
// @Description  Filters, sorts and pages the venue list. Sorting by DISTANCE needs myLatitude and myLongitude.
// @Tags         venues
// @Produce      json
// @Param        startIndex     query  int     false  "Rows to skip"
// @Param        count          query  int     false  "Page size"
// @Param        city           query  string  false  "Exact city"
// @Param        q              query  string  false  "Substring of the venue name"
// @Param        categoryId     query  int     false  "Category"
// @Param        minStarRating  query  int     false  "1 to 5"
// @Param        maxCostRating  query  int     false  "0 to 4"
// @Param        adminId        query  int     false  "Venue admin"
// @Param        sortBy         query  string  false  "STAR_RATING, COST_RATING or DISTANCE"
// @Param        reverseSort    query  bool    false  "Ascending order"
// @Param        myLatitude     query  number  false  "Caller latitude"
// @Param        myLongitude    query  number  false  "Caller longitude"
// @Success      200  {array}   model.VenueSummary
// @Failure      400  {object}  common.AppError
// @Router       /api/v1/venues [get]
func (h *VenueHandler) SearchVenues(w http.ResponseWriter, r *http.Request) *common.AppError {
	q, err := model.ParseVenueSearchQuery(schema.FromQuery(r.URL.Query()))
	if err != nil {
		return common.NewValidationError(http.StatusBadRequest, err)
	}

	venues, err := h.venues.Search(r.Context(), q)
	if err != nil {
		return fromServiceError(err)
	}
	common.WriteJSON(w, http.StatusOK, venues)
	return nil
}

// GetVenue godoc
// @Summary      Get a venue with its photos
// @Tags         venues
// @Produce      json
// @Param        id   path      int  true  "Venue ID"
// @Success      200  {object}  model.VenueDetail
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/venues/{id} [get]
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}
	venue, err := h.venues.Get(r.Context(), id)
	if err != nil {
		return fromLookupError(err)
	}
	common.WriteJSON(w, http.StatusOK, venue)
	return nil
}

// CreateVenue godoc
// @Summary      Create a venue administered by the caller
// @Tags         venues
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body  body      object  true  "venueName, categoryId, city, shortDescription, longDescription, address, latitude, longitude"
// @Success      201   {object}  model.CreatedVenue
// @Failure      400   {object}  common.AppError
// @Failure      401   {object}  common.AppError
// @Router       /api/v1/venues [post]
func (h *VenueHandler) CreateVenue(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}
	v, appErr := decodeBody(r, model.VenueCreateSchema)
	if appErr != nil {
		return appErr
	}
	venue := model.NewVenueFromValues(v)

	logger.Log.WithFields(logrus.Fields{
		"admin_id":    userID,
		"venue_name":  venue.Name,
		"category_id": venue.CategoryID,
	}).Info("Create venue request received")

	created, err := h.venues.Create(r.Context(), userID, venue)
	if err != nil {
		return fromServiceError(err)
	}
	common.WriteJSON(w, http.StatusCreated, created)
	return nil
}

// UpdateVenue godoc
// @Summary      Change a venue's details
// @Description  Only the venue admin may change it.
// @Tags         venues
// @Accept       json
// @Security     ApiKeyAuth
// @Param        id    path  int     true  "Venue ID"
// @Param        body  body  object  true  "Any subset of the create fields"
// @Success      200
// @Failure      400  {object}  common.AppError
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/venues/{id} [patch]
func (h *VenueHandler) UpdateVenue(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}
	v, appErr := decodeBody(r, model.VenueUpdateSchema)
	if appErr != nil {
		return appErr
	}

	if err := h.venues.Update(r.Context(), userID, id, model.NewVenueUpdateFromValues(v)); err != nil {
		return fromServiceError(err)
	}
	w.WriteHeader(http.StatusOK)
	return nil
}

// ListCategories godoc
// @Summary      List venue categories
// @Tags         venues
// @Produce      json
// @Success      200  {array}  model.Category
// @Router       /api/v1/categories [get]
func (h *VenueHandler) ListCategories(w http.ResponseWriter, r *http.Request) *common.AppError {
	categories, err := h.venues.ListCategories(r.Context())
	if err != nil {
		return fromServiceError(err)
	}
	common.WriteJSON(w, http.StatusOK, categories)
	return nil
}
