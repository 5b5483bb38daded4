package middleware

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/http/handlers/response"
)

// crawlerPattern covers the usual self-identifying crawlers. Telegram webhook
// deliveries carry no user agent and pass through.
var crawlerPattern = regexp.MustCompile(
	`(?i)bot\b|crawler|spider|crawling|slurp|headless|facebookexternalhit|mediapartners`,
)

// DropCrawlers ends the request without a body for bot/crawler user agents and
// for methods other than GET and POST.
func DropCrawlers(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
			return
		}
		if ua := r.UserAgent(); ua != "" && crawlerPattern.MatchString(ua) {
			return
		}
		next.ServeHTTP(rw, r)
	})
}

// ResponseTime reports request handling time through the X-Response-Time
// header.
func ResponseTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		wrapped := &headerInjectingWriter{ResponseWriter: rw, start: time.Now()}
		next.ServeHTTP(wrapped, r)
		wrapped.inject()
	})
}

type headerInjectingWriter struct {
	http.ResponseWriter
	start    time.Time
	injected bool
}

func (w *headerInjectingWriter) WriteHeader(status int) {
	w.inject()
	w.ResponseWriter.WriteHeader(status)
}

func (w *headerInjectingWriter) Write(content []byte) (int, error) {
	w.inject()
	return w.ResponseWriter.Write(content)
}

func (w *headerInjectingWriter) inject() {
	if w.injected {
		return
	}
	w.injected = true
	w.Header().Set("X-Response-Time", fmt.Sprintf("%dms", time.Since(w.start).Milliseconds()))
}

// RecoverToOK is the boundary-wide guard: a panic anywhere below is logged and
// answered with the generic ok body.
func RecoverToOK(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error(
						context.Background(),
						"Recovered from panic while handling request.",
						logging.Entry("path", r.URL.Path),
						logging.Entry("panic", rec),
					)
					response.RenderOK(rw)
				}
			}()
			next.ServeHTTP(rw, r)
		})
	}
}
