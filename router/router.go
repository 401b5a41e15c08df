package router

import (
	"net/http"
	"time"
	"venue-review-api/common"
	"venue-review-api/handler"
	"venue-review-api/metrics"

	_ "venue-review-api/docs"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth    *handler.AuthMiddleware
	Health  *handler.HealthHandler
	Users   *handler.UserHandler
	Venues  *handler.VenueHandler
	Photos  *handler.PhotoHandler
	Reviews *handler.ReviewHandler
}

type Options struct {
	AllowedOrigins []string
	LoginRequests  int
	LoginWindow    time.Duration
}

type appHandler = func(http.ResponseWriter, *http.Request) *common.AppError

func NewRouter(h Handlers, opts Options) http.Handler {
	mux := http.NewServeMux()

	public := func(fn appHandler) http.Handler {
		return handler.ErrorHandlingMiddleware(fn)
	}
	private := func(fn appHandler) http.Handler {
		return h.Auth.RequireAuth(handler.ErrorHandlingMiddleware(fn))
	}
	optional := func(fn appHandler) http.Handler {
		return h.Auth.OptionalAuth(handler.ErrorHandlingMiddleware(fn))
	}

	// --- Public Routes ---
	mux.HandleFunc("GET /health", h.Health.HealthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- Users ---
	loginLimit := httprate.LimitByIP(opts.LoginRequests, opts.LoginWindow)
	mux.Handle("POST /api/v1/users", public(h.Users.Register))
	mux.Handle("POST /api/v1/users/login", loginLimit(public(h.Users.Login)))
	mux.Handle("POST /api/v1/users/logout", private(h.Users.Logout))
	mux.Handle("GET /api/v1/users/{id}", optional(h.Users.GetUser))
	mux.Handle("PATCH /api/v1/users/{id}", private(h.Users.UpdateUser))
	mux.Handle("PUT /api/v1/users/{id}/photo", private(h.Users.PutPhoto))
	mux.Handle("GET /api/v1/users/{id}/photo", public(h.Users.GetPhoto))
	mux.Handle("DELETE /api/v1/users/{id}/photo", private(h.Users.DeletePhoto))
	mux.Handle("GET /api/v1/users/{id}/reviews", public(h.Reviews.ListUserReviews))

	// --- Venues ---
	mux.Handle("GET /api/v1/venues", public(h.Venues.SearchVenues))
	mux.Handle("POST /api/v1/venues", private(h.Venues.CreateVenue))
	mux.Handle("GET /api/v1/venues/{id}", public(h.Venues.GetVenue))
	mux.Handle("PATCH /api/v1/venues/{id}", private(h.Venues.UpdateVenue))
	mux.Handle("GET /api/v1/categories", public(h.Venues.ListCategories))

	// --- Venue photos ---
	mux.Handle("POST /api/v1/venues/{id}/photos", private(h.Photos.UploadPhoto))
	mux.Handle("GET /api/v1/venues/{id}/photos/{photoFilename}", public(h.Photos.GetPhoto))
	mux.Handle("DELETE /api/v1/venues/{id}/photos/{photoFilename}", private(h.Photos.DeletePhoto))
	mux.Handle("POST /api/v1/venues/{id}/photos/{photoFilename}/setPrimary", private(h.Photos.SetPrimary))

	// --- Reviews ---
	mux.Handle("POST /api/v1/venues/{id}/reviews", private(h.Reviews.CreateReview))
	mux.Handle("GET /api/v1/venues/{id}/reviews", public(h.Reviews.ListVenueReviews))

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Authorization"},
		MaxAge:         300,
	})

	return metrics.Middleware(handler.RequestLogger(corsHandler(mux)))
}
