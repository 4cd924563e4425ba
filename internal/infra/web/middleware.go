package web

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"vendor-pricelist-platform/internal/infra/logging"
)

type ctxKey string

const ctxUserID ctxKey = "web_user_id"

// UserIDFrom returns the authenticated vendor's user id, empty when the
// request carries no vendor session.
func UserIDFrom(ctx context.Context) string {
	if v := ctx.Value(ctxUserID); v != nil {
		return v.(string)
	}
	return ""
}

// traceMiddleware assigns every request a trace id, echoed in the
// X-Trace-Id response header and attached to log context.
func (s *Server) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-Id")
		if traceID == "" {
			traceID = uuid.NewString()
		}
		w.Header().Set("X-Trace-Id", traceID)
		next.ServeHTTP(w, r.WithContext(logging.WithTraceID(r.Context(), traceID)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.With(r.Context(), s.log).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				logging.With(r.Context(), s.log).Error().
					Interface("panic", rvr).
					Str("path", r.URL.Path).
					Msg("handler panicked")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// vendorAuth requires a vendor session and stashes the user id in context.
func (s *Server) vendorAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.auth.ParseFromRequest(r)
		if err != nil || claims.Role != RoleVendor || claims.Subject == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserID, claims.Subject)
		ctx = logging.WithUserID(ctx, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminAuth requires a superadmin session.
func (s *Server) adminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.auth.ParseFromRequest(r)
		if err != nil || claims.Role != RoleAdmin {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
