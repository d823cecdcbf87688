package http

import (
	"net/http"
	"strings"
	"sync"

	"github.com/fwojciec/readdoc"
	"github.com/go-chi/cors"
)

// cors applies the CORS policy for AllowedOrigins. The policy is built on
// the first request so origins set after NewServer take effect.
func (s *Server) cors(next http.Handler) http.Handler {
	var (
		once sync.Once
		h    http.Handler
	)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() {
			h = cors.Handler(cors.Options{
				AllowedOrigins:   s.AllowedOrigins,
				AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
				AllowedHeaders:   []string{"Authorization", "Content-Type"},
				AllowCredentials: true,
				MaxAge:           300,
			})(next)
		})
		h.ServeHTTP(w, r)
	})
}

// limitBody caps the size of request bodies.
func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := s.MaxUploadBytes
		if limit <= 0 {
			limit = DefaultMaxUploadBytes
		}
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next.ServeHTTP(w, r)
	})
}

// authenticate resolves the bearer token into an identity on the request
// context. Requests without a valid token are rejected.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			s.Error(w, r, readdoc.Errorf(readdoc.EUNAUTHORIZED, "Missing or invalid Authorization header"))
			return
		}

		id, err := s.TokenVerifier.Verify(r.Context(), token)
		if err != nil {
			s.Error(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(readdoc.NewContextWithIdentity(r.Context(), id)))
	})
}

// rateLimit rejects requests from users over their rate.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Limiter != nil {
			if id := readdoc.IdentityFromContext(r.Context()); id != nil && !s.Limiter.Allow(id.UserID) {
				w.Header().Set("Retry-After", "1")
				s.Error(w, r, readdoc.Errorf(readdoc.ERATELIMIT, "Too many requests"))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
