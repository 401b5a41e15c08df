package handler

import (
	"net/http"
	"time"
	"venue-review-api/logger"

	"github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request once it has been answered.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(sw, r)

		logger.Log.WithFields(logrus.Fields{
			"method":      r.Method,
			"route":       r.Pattern,
			"path":        r.URL.Path,
			"status":      sw.statusCode,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("Request completed")
	})
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
