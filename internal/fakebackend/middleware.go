package fakebackend

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-secret-keeper/internal/utils"
)

// track counts calls of route and replays a queued failure, if any.
func (b *Backend) track(route Route) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b.mu.Lock()
			b.calls[route]++
			var failure *Failure
			if queue := b.failures[route]; len(queue) > 0 {
				f := queue[0]
				failure = &f
				b.failures[route] = queue[1:]
			}
			b.mu.Unlock()

			if failure == nil {
				next.ServeHTTP(w, r)
				return
			}

			b.logger.Debug().
				Str("func", "*Backend.track").
				Str("route", string(route)).
				Int("status", failure.Status).
				Msg("replaying scripted failure")

			if failure.RetryAfter > 0 {
				seconds := int(math.Ceil(failure.RetryAfter.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
			}
			message := failure.Message
			if message == "" {
				message = http.StatusText(failure.Status)
			}
			writeJSON(w, failure.Status, envelope{Code: failure.Status, Message: message})
		})
	}
}

// auth rejects requests without a valid bearer token with 401 and stores
// the token subject in the request context.
func (b *Backend) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, envelope{Code: http.StatusUnauthorized, Message: "Unauthorized"})
			return
		}

		subject, err := utils.ValidateJWTToken(tokenString, b.signKey, tokenIssuer)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, envelope{Code: http.StatusUnauthorized, Message: "Invalid or expired token"})
			return
		}

		ctx := context.WithValue(r.Context(), utils.SubjectCtxKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
