package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := NewHealthHandler(pingerFunc(func(context.Context) error { return nil }))
		rr := httptest.NewRecorder()
		h.HealthCheck(rr, httptest.NewRequest("GET", "/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"API is healthy and running"}`, rr.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		h := NewHealthHandler(pingerFunc(func(context.Context) error { return errors.New("down") }))
		rr := httptest.NewRecorder()
		h.HealthCheck(rr, httptest.NewRequest("GET", "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}
