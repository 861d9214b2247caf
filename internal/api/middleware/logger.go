package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"scamshield/pkg/logger"
)

// Logger attaches a request-scoped logger to the context and writes one
// access line per request. Query strings stay out of the log since they
// can carry scanned content.
func Logger(log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLog := log.WithRequest(middleware.GetReqID(r.Context()), r.Method, r.URL.Path)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(reqLog.WithContext(r.Context())))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			event := reqLog.Debug()
			switch {
			case status >= http.StatusInternalServerError:
				event = reqLog.Warn()
			case r.URL.Path != "/health" && r.URL.Path != "/ready":
				event = reqLog.Info()
			}
			event.
				Str("remote_addr", r.RemoteAddr).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request completed")
		})
	}
}
