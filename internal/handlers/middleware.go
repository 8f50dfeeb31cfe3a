package handlers

import (
	"net/http"
	"time"

	"github.com/gdg-garage/trip-planner/internal/logger"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// CORS lets the frontend call the API with its auth cookie.
func CORS(frontendURL string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-API-KEY"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}

// RequestLogger tags the request context with chi's request id and logs one
// line per request once the handler returns. Mount it after middleware.RequestID.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := log.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			event := log.Zerolog().Info()
			if status >= http.StatusInternalServerError {
				event = log.Zerolog().Error()
			}
			event.
				Str("request_id", middleware.GetReqID(ctx)).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
