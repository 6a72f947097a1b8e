package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeamar123/budget-api/internal/log"
)

type ctxKey int

const (
	ctxKeyUserID ctxKey = iota
	ctxKeyRequestID
)

// withMiddleware wraps the mux with request tracing, security headers and
// per-IP rate limiting.
func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ip := clientIP(r)
		requestID := uuid.NewString()

		ctx := context.WithValue(r.Context(), ctxKeyRequestID, requestID)
		r = r.WithContext(ctx)

		s.log.InfoContext(ctx, "request started",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, ip,
			log.FieldUserAgent, r.Header.Get("User-Agent"))

		if !s.rateLimiter.allow(ip) {
			s.log.WarnContext(ctx, "rate limit exceeded",
				log.FieldRequestID, requestID,
				log.FieldClientIP, ip,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			s.respondError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		s.log.InfoContext(ctx, "request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, ip)
	})
}

// requireAuth resolves the bearer token to a user id and stores it in the
// request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			s.respondError(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}
		userID, err := s.auth.Resolve(r.Context(), token)
		if err != nil {
			s.respondError(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyUserID, userID)
		next(w, r.WithContext(ctx))
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}

// userID returns the authenticated user's id. Handlers behind requireAuth can
// rely on it being set.
func userID(r *http.Request) int64 {
	id, _ := r.Context().Value(ctxKeyUserID).(int64)
	return id
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		// First hop is the originating client.
		if i := strings.IndexByte(ip, ','); i > 0 {
			return strings.TrimSpace(ip[:i])
		}
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// responseWriter captures the status code for request logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
