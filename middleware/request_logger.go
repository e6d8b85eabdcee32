package middleware

import (
	"net/http"
	"time"

	"SocialStream/utils"

	"github.com/gorilla/mux"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// RequestLogger logs one line per request with its route template, status
// and latency. Health and metrics scrapes log at debug.
func RequestLogger() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tmpl, err := route.GetPathTemplate(); err == nil {
					path = tmpl
				}
			}

			logf := utils.Infof
			switch {
			case rec.status >= 500:
				logf = utils.Errorf
			case path == "/health" || path == "/metrics":
				logf = utils.Debugf
			}
			logf("http request method=%s path=%s status=%d bytes=%d duration=%s ip=%s",
				r.Method, path, rec.status, rec.bytes, time.Since(start).Round(time.Microsecond), extractIP(r))
		})
	}
}
