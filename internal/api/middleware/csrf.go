package middleware

import (
	"net/http"

	"filippo.io/csrf/gorilla"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// CSRF rejects cross-origin form posts using Fetch metadata headers.
// key is a 32-byte secret; trustedOrigins are host[:port] values that may
// post cross-origin.
func CSRF(log zerolog.Logger, key []byte, trustedOrigins []string) echo.MiddlewareFunc {
	opts := []csrf.Option{
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reason := "unknown"
			if err := csrf.FailureReason(r); err != nil {
				reason = err.Error()
			}
			log.Warn().
				Str("reason", reason).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("origin", r.Header.Get("Origin")).
				Msg("cross-site request rejected")
			http.Error(w, "Forbidden - cross-site request rejected", http.StatusForbidden)
		})),
	}
	if len(trustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(trustedOrigins))
	}
	return echo.WrapMiddleware(csrf.Protect(key, opts...))
}
