package handler

import (
	"net/http"
	"strings"
	"testing"
	"venue-review-api/model"
	"venue-review-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateReview(t *testing.T) {
	const pattern = "POST /api/v1/venues/{id}/reviews"
	body := `{"reviewBody":"Lovely","starRating":5,"costRating":2}`
	review := model.NewReview{ReviewBody: "Lovely", StarRating: 5, CostRating: 2}

	t.Run("second review of the same venue is forbidden", func(t *testing.T) {
		reviews := new(MockReviewService)
		reviews.On("Create", mock.Anything, 4, 9, review).Return(nil).Once()
		reviews.On("Create", mock.Anything, 4, 9, review).Return(service.ErrDuplicateReview).Once()
		h := newTestAuth(4).RequireAuth(ErrorHandlingMiddleware(NewReviewHandler(reviews).CreateReview))

		req, _ := http.NewRequest("POST", "/api/v1/venues/9/reviews", strings.NewReader(body))
		req.Header.Set(model.AuthHeader, testToken)
		assert.Equal(t, http.StatusCreated, serve(pattern, h, req).Code)

		req, _ = http.NewRequest("POST", "/api/v1/venues/9/reviews", strings.NewReader(body))
		req.Header.Set(model.AuthHeader, testToken)
		assert.Equal(t, http.StatusForbidden, serve(pattern, h, req).Code)
		reviews.AssertExpectations(t)
	})

	t.Run("star rating out of range", func(t *testing.T) {
		reviews := new(MockReviewService)
		h := newTestAuth(4).RequireAuth(ErrorHandlingMiddleware(NewReviewHandler(reviews).CreateReview))
		req, _ := http.NewRequest("POST", "/api/v1/venues/9/reviews", strings.NewReader(`{"reviewBody":"x","starRating":6,"costRating":2}`))
		req.Header.Set(model.AuthHeader, testToken)

		assert.Equal(t, http.StatusBadRequest, serve(pattern, h, req).Code)
		reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("venue missing", func(t *testing.T) {
		reviews := new(MockReviewService)
		reviews.On("Create", mock.Anything, 4, 9, review).Return(service.ErrVenueNotFound)
		h := newTestAuth(4).RequireAuth(ErrorHandlingMiddleware(NewReviewHandler(reviews).CreateReview))
		req, _ := http.NewRequest("POST", "/api/v1/venues/9/reviews", strings.NewReader(body))
		req.Header.Set(model.AuthHeader, testToken)

		assert.Equal(t, http.StatusNotFound, serve(pattern, h, req).Code)
	})
}

func TestListUserReviews(t *testing.T) {
	const pattern = "GET /api/v1/users/{id}/reviews"

	t.Run("unknown user", func(t *testing.T) {
		reviews := new(MockReviewService)
		reviews.On("ListForUser", mock.Anything, 7).Return(nil, service.ErrUserNotFound)
		req, _ := http.NewRequest("GET", "/api/v1/users/7/reviews", nil)
		rr := serve(pattern, ErrorHandlingMiddleware(NewReviewHandler(reviews).ListUserReviews), req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("user without reviews", func(t *testing.T) {
		reviews := new(MockReviewService)
		reviews.On("ListForUser", mock.Anything, 7).Return([]*model.ReviewDetail{}, nil)
		req, _ := http.NewRequest("GET", "/api/v1/users/7/reviews", nil)
		rr := serve(pattern, ErrorHandlingMiddleware(NewReviewHandler(reviews).ListUserReviews), req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})
}
