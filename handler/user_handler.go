package handler

import (
	"io"
	"net/http"
	"venue-review-api/common"
	"venue-review-api/logger"
	"venue-review-api/model"
	"venue-review-api/schema"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// maxPhotoBytes bounds raw and multipart photo uploads.
const maxPhotoBytes = 20 << 20

type UserHandler struct {
	users UserService
	auth  AuthService
}

func NewUserHandler(users UserService, auth AuthService) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

// Register godoc
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      object  true  "username, email, givenName, familyName, password"
// @Success      201   {object}  model.CreatedUser
// @Failure      400   {object}  common.AppError
// @Router       /api/v1/users [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	v, appErr := decodeBody(r, model.RegisterSchema)
	if appErr != nil {
		return appErr
	}

	var user model.User
	user.Username, _ = v.String("username")
	user.Email, _ = v.String("email")
	user.GivenName, _ = v.String("givenName")
	user.FamilyName, _ = v.String("familyName")
	password, _ := v.String("password")

	logger.Log.WithField("username", user.Username).Info("Register request received")

	created, err := h.users.Register(r.Context(), user, password)
	if err != nil {
		return fromServiceError(err)
	}
	common.WriteJSON(w, http.StatusCreated, created)
	return nil
}

// Login godoc
// @Summary      Log in with a username or email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      object  true  "username or email, password"
// @Success      200   {object}  model.Session
// @Failure      400   {object}  common.AppError
// @Router       /api/v1/users/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	v, appErr := decodeBody(r, model.LoginSchema)
	if appErr != nil {
		return appErr
	}
	username := v.StringPtr("username")
	email := v.StringPtr("email")
	if username == nil && email == nil {
		return common.NewAppError(http.StatusBadRequest, "username or email is required", nil)
	}
	password, _ := v.String("password")

	session, err := h.auth.Login(r.Context(), username, email, password)
	if err != nil {
		return fromServiceError(err)
	}
	common.WriteJSON(w, http.StatusOK, session)
	return nil
}

// Logout godoc
// @Summary      Invalidate the caller's session token
// @Tags         users
// @Security     ApiKeyAuth
// @Success      200
// @Failure      401  {object}  common.AppError
// @Router       /api/v1/users/logout [post]
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}
	if err := h.auth.Logout(r.Context(), userID); err != nil {
		return fromServiceError(err)
	}
	w.WriteHeader(http.StatusOK)
	return nil
}

// GetUser godoc
// @Summary      Get a user's profile
// @Description  The email is only included when the caller is the user.
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  model.UserProfile
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}
	var viewer *int
	if userID, ok := UserIDFromContext(r.Context()); ok {
		viewer = &userID
	}

	profile, err := h.users.GetProfile(r.Context(), id, viewer)
	if err != nil {
		return fromLookupError(err)
	}
	common.WriteJSON(w, http.StatusOK, profile)
	return nil
}

// UpdateUser godoc
// @Summary      Change the caller's own details
// @Tags         users
// @Accept       json
// @Security     ApiKeyAuth
// @Param        id    path  int     true  "User ID"
// @Param        body  body  object  true  "givenName, familyName, password"
// @Success      200
// @Failure      400  {object}  common.AppError
// @Failure      403  {object}  common.AppError
// @Router       /api/v1/users/{id} [patch]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}
	v, appErr := decodeBody(r, model.UserUpdateSchema)
	if appErr != nil {
		return appErr
	}

	if err := h.users.Update(r.Context(), userID, id, model.NewUserUpdateFromValues(v)); err != nil {
		return fromServiceError(err)
	}
	w.WriteHeader(http.StatusOK)
	return nil
}

// PutPhoto godoc
// @Summary      Set the caller's profile photo
// @Description  The body is the raw image. Returns 201 when the user had no photo before.
// @Tags         users
// @Accept       image/jpeg,image/png
// @Security     ApiKeyAuth
// @Param        id   path  int  true  "User ID"
// @Success      200
// @Success      201
// @Failure      400  {object}  common.AppError
// @Failure      403  {object}  common.AppError
// @Router       /api/v1/users/{id}/photo [put]
func (h *UserHandler) PutPhoto(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}
	v, err := schema.Validate(schema.FromHeader(r.Header, "Content-Type"), model.ContentTypeSchema)
	if err != nil {
		return common.NewValidationError(http.StatusBadRequest, err)
	}
	contentType, _ := v.String("content-type")

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPhotoBytes))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Could not read photo", nil)
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id":      id,
		"content_type": contentType,
		"size":         len(data),
	}).Info("Profile photo upload received")

	created, err := h.users.PutPhoto(r.Context(), userID, id, contentType, data)
	if err != nil {
		return fromServiceError(err)
	}
	if created {
		w.WriteHeader(http.StatusCreated)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	return nil
}

// GetPhoto godoc
// @Summary      Get a user's profile photo
// @Tags         users
// @Produce      image/jpeg,image/png
// @Param        id   path  int  true  "User ID"
// @Success      200
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/users/{id}/photo [get]
func (h *UserHandler) GetPhoto(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}
	file, contentType, err := h.users.OpenPhoto(r.Context(), id)
	if err != nil {
		return fromLookupError(err)
	}
	defer file.Close()
	return serveFile(w, r, file, contentType)
}

// DeletePhoto godoc
// @Summary      Remove the caller's profile photo
// @Tags         users
// @Security     ApiKeyAuth
// @Param        id   path  int  true  "User ID"
// @Success      200
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/users/{id}/photo [delete]
func (h *UserHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}
	userID, appErr := callerID(r)
	if appErr != nil {
		return appErr
	}
	if err := h.users.DeletePhoto(r.Context(), userID, id); err != nil {
		return fromServiceError(err)
	}
	w.WriteHeader(http.StatusOK)
	return nil
}

func serveFile(w http.ResponseWriter, r *http.Request, file afero.File, contentType string) *common.AppError {
	info, err := file.Stat()
	if err != nil {
		return common.NewAppError(http.StatusNotFound, "Photo not found", err)
	}
	w.Header().Set("Content-Type", contentType)
	http.ServeContent(w, r, info.Name(), info.ModTime(), file)
	return nil
}
