package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"
	"venue-review-api/model"
	"venue-review-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, fields map[string]string, contentType string, photo []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if photo != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="photo"; filename="upload"`)
		header.Set("Content-Type", contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestUploadPhoto(t *testing.T) {
	const pattern = "POST /api/v1/venues/{id}/photos"

	t.Run("stored", func(t *testing.T) {
		photos := new(MockPhotoService)
		photos.On("Upload", mock.Anything, 3, 9, model.PhotoUpload{
			ContentType: "image/jpeg",
			Data:        []byte("jpeg"),
			Description: "Front door",
			MakePrimary: true,
		}).Return("abc.jpg", nil)

		body, ct := multipartUpload(t, map[string]string{"description": "Front door", "makePrimary": "true"}, "image/jpeg", []byte("jpeg"))
		req, _ := http.NewRequest("POST", "/api/v1/venues/9/photos", body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set(model.AuthHeader, testToken)
		rr := serve(pattern, newTestAuth(3).RequireAuth(ErrorHandlingMiddleware(NewPhotoHandler(photos).UploadPhoto)), req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.JSONEq(t, `{"photoFilename":"abc.jpg"}`, rr.Body.String())
		photos.AssertExpectations(t)
	})

	t.Run("photo part is required", func(t *testing.T) {
		photos := new(MockPhotoService)
		body, ct := multipartUpload(t, map[string]string{"description": "x", "makePrimary": "false"}, "", nil)
		req, _ := http.NewRequest("POST", "/api/v1/venues/9/photos", body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set(model.AuthHeader, testToken)
		rr := serve(pattern, newTestAuth(3).RequireAuth(ErrorHandlingMiddleware(NewPhotoHandler(photos).UploadPhoto)), req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		photos.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("makePrimary is required", func(t *testing.T) {
		photos := new(MockPhotoService)
		body, ct := multipartUpload(t, map[string]string{"description": "x"}, "image/png", []byte("png"))
		req, _ := http.NewRequest("POST", "/api/v1/venues/9/photos", body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set(model.AuthHeader, testToken)
		rr := serve(pattern, newTestAuth(3).RequireAuth(ErrorHandlingMiddleware(NewPhotoHandler(photos).UploadPhoto)), req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "makePrimary")
	})

	t.Run("unsupported filetype", func(t *testing.T) {
		photos := new(MockPhotoService)
		photos.On("Upload", mock.Anything, 3, 9, mock.Anything).Return("", service.ErrUnsupportedFiletype)
		body, ct := multipartUpload(t, map[string]string{"description": "x", "makePrimary": "false"}, "image/gif", []byte("gif"))
		req, _ := http.NewRequest("POST", "/api/v1/venues/9/photos", body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set(model.AuthHeader, testToken)
		rr := serve(pattern, newTestAuth(3).RequireAuth(ErrorHandlingMiddleware(NewPhotoHandler(photos).UploadPhoto)), req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Unsupported filetype")
	})

	t.Run("not a multipart body", func(t *testing.T) {
		req, _ := http.NewRequest("POST", "/api/v1/venues/9/photos", bytes.NewBufferString("{}"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(model.AuthHeader, testToken)
		rr := serve(pattern, newTestAuth(3).RequireAuth(ErrorHandlingMiddleware(NewPhotoHandler(new(MockPhotoService)).UploadPhoto)), req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestDeletePhoto(t *testing.T) {
	const pattern = "DELETE /api/v1/venues/{id}/photos/{photoFilename}"

	t.Run("missing photo", func(t *testing.T) {
		photos := new(MockPhotoService)
		photos.On("Delete", mock.Anything, 3, 9, "gone.jpg").Return(service.ErrPhotoNotFound)
		req, _ := http.NewRequest("DELETE", "/api/v1/venues/9/photos/gone.jpg", nil)
		req.Header.Set(model.AuthHeader, testToken)
		rr := serve(pattern, newTestAuth(3).RequireAuth(ErrorHandlingMiddleware(NewPhotoHandler(photos).DeletePhoto)), req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("deleted", func(t *testing.T) {
		photos := new(MockPhotoService)
		photos.On("Delete", mock.Anything, 3, 9, "a.jpg").Return(nil)
		req, _ := http.NewRequest("DELETE", "/api/v1/venues/9/photos/a.jpg", nil)
		req.Header.Set(model.AuthHeader, testToken)
		rr := serve(pattern, newTestAuth(3).RequireAuth(ErrorHandlingMiddleware(NewPhotoHandler(photos).DeletePhoto)), req)

		assert.Equal(t, http.StatusOK, rr.Code)
		photos.AssertExpectations(t)
	})
}

func TestSetPrimary_NotAdmin(t *testing.T) {
	photos := new(MockPhotoService)
	photos.On("SetPrimary", mock.Anything, 4, 9, "a.jpg").Return(service.ErrForbidden)
	req, _ := http.NewRequest("POST", "/api/v1/venues/9/photos/a.jpg/setPrimary", nil)
	req.Header.Set(model.AuthHeader, testToken)
	rr := serve("POST /api/v1/venues/{id}/photos/{photoFilename}/setPrimary",
		newTestAuth(4).RequireAuth(ErrorHandlingMiddleware(NewPhotoHandler(photos).SetPrimary)), req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}
