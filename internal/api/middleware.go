package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"milk-collection-service/internal/platform/obs"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// requestLogger logs one line per request and threads the chi request id into
// the context so obs.Time picks it up.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		reqID := middleware.GetReqID(r.Context())
		ctx := context.WithValue(r.Context(), obs.RequestIDKey, reqID)

		next.ServeHTTP(sw, r.WithContext(ctx))

		logrus.WithFields(logrus.Fields{
			"req_id": reqID,
			"method": r.Method,
			"path":   r.URL.Path,
			"status": sw.status,
			"dur_ms": time.Since(start).Milliseconds(),
		}).Info("request")
	})
}
