package handler

import (
	"io"
	"net/http"
	"net/url"
	"venue-review-api/common"
	"venue-review-api/logger"
	"venue-review-api/model"
	"venue-review-api/schema"

	"github.com/sirupsen/logrus"
)

type PhotoHandler struct {
	photos PhotoService
}

func NewPhotoHandler(photos PhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// UploadPhoto godoc
// @Summary      Add a photo to a venue
// @Tags         photos
// @Accept       multipart/form-data
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id           path      int     true  "Venue ID"
// @Param        photo        formData  file    true  "JPEG or PNG image"
// @Param        description  formData  string  true  "Photo description"
// @Param        makePrimary  formData  bool    true  "Make this the primary photo"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  common.AppError
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/venues/{id}/photos [post]
func (h *PhotoHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) *common.AppError {
	venueID, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes)
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Request must be a multipart form", nil)
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "photo is required", nil)
	}
	defer file.Close()

	v, err := schema.Validate(schema.FromQuery(url.Values(r.MultipartForm.Value)), model.PhotoFormSchema)
	if err != nil {
		return common.NewValidationError(http.StatusBadRequest, err)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Could not read photo", nil)
	}

	upload := model.PhotoUpload{
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}
	upload.Description, _ = v.String("description")
	upload.MakePrimary, _ = v.Bool("makePrimary")

	logger.Log.WithFields(logrus.Fields{
		"venue_id":     venueID,
		"content_type": upload.ContentType,
		"make_primary": upload.MakePrimary,
	}).Info("Venue photo upload received")

	filename, err := h.photos.Upload(r.Context(), userID, venueID, upload)
	if err != nil {
		return fromServiceError(err)
	}
	common.WriteJSON(w, http.StatusCreated, map[string]string{"photoFilename": filename})
	return nil
}

// GetPhoto godoc
// @Summary      Get a venue photo
// @Tags         photos
// @Produce      image/jpeg,image/png
// @Param        id             path  int     true  "Venue ID"
// @Param        photoFilename  path  string  true  "Photo filename"
// @Success      200
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/venues/{id}/photos/{photoFilename} [get]
func (h *PhotoHandler) GetPhoto(w http.ResponseWriter, r *http.Request) *common.AppError {
	venueID, filename, appErr := photoPath(r)
	if appErr != nil {
		return appErr
	}
	file, contentType, err := h.photos.Open(r.Context(), venueID, filename)
	if err != nil {
		return fromLookupError(err)
	}
	defer file.Close()
	return serveFile(w, r, file, contentType)
}

// DeletePhoto godoc
// @Summary      Delete a venue photo
// @Description  Deleting the primary photo promotes another one.
// @Tags         photos
// @Security     ApiKeyAuth
// @Param        id             path  int     true  "Venue ID"
// @Param        photoFilename  path  string  true  "Photo filename"
// @Success      200
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/venues/{id}/photos/{photoFilename} [delete]
func (h *PhotoHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) *common.AppError {
	venueID, filename, appErr := photoPath(r)
	if appErr != nil {
		return appErr
	}
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}
	if err := h.photos.Delete(r.Context(), userID, venueID, filename); err != nil {
		return fromServiceError(err)
	}
	w.WriteHeader(http.StatusOK)
	return nil
}

// SetPrimary godoc
// @Summary      Make a photo the venue's primary photo
// @Tags         photos
// @Security     ApiKeyAuth
// @Param        id             path  int     true  "Venue ID"
// @Param        photoFilename  path  string  true  "Photo filename"
// @Success      200
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/venues/{id}/photos/{photoFilename}/setPrimary [post]
func (h *PhotoHandler) SetPrimary(w http.ResponseWriter, r *http.Request) *common.AppError {
	venueID, filename, appErr := photoPath(r)
	if appErr != nil {
		return appErr
	}
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}
	if err := h.photos.SetPrimary(r.Context(), userID, venueID, filename); err != nil {
		return fromServiceError(err)
	}
	w.WriteHeader(http.StatusOK)
	return nil
}
