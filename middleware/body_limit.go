package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
)

// BodyLimit returns gorilla/mux middleware that caps the request body at
// maxBytes. Reads past the limit fail and handlers answer 413.
func BodyLimit(maxBytes int64) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
