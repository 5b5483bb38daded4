package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gatekeeper/internal/core/domain/logging"

	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.Write([]byte("handled"))
	})
}

func TestDropCrawlers(t *testing.T) {
	cases := []struct {
		id        string
		method    string
		userAgent string
		dropped   bool
	}{
		{id: "regular browser", method: http.MethodGet, userAgent: "Mozilla/5.0 (X11; Linux x86_64)", dropped: false},
		{id: "empty user agent", method: http.MethodPost, userAgent: "", dropped: false},
		{id: "googlebot", method: http.MethodGet, userAgent: "Mozilla/5.0 (compatible; Googlebot/2.1)", dropped: true},
		{id: "twitterbot", method: http.MethodGet, userAgent: "Twitterbot/1.0", dropped: true},
		{id: "crawler", method: http.MethodGet, userAgent: "some-crawler/3.0", dropped: true},
		{id: "headless browser", method: http.MethodGet, userAgent: "Mozilla/5.0 HeadlessChrome/110.0", dropped: true},
		{id: "disallowed method", method: http.MethodDelete, userAgent: "Mozilla/5.0", dropped: true},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			r := httptest.NewRequest(testcase.method, "/anything", nil)
			r.Header.Set("User-Agent", testcase.userAgent)
			rw := httptest.NewRecorder()

			DropCrawlers(okHandler()).ServeHTTP(rw, r)

			assert := require.New(t)
			if testcase.dropped {
				assert.Empty(rw.Body.String())
			} else {
				assert.Equal("handled", rw.Body.String())
			}
		})
	}
}

func TestResponseTimeHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rw := httptest.NewRecorder()

	ResponseTime(okHandler()).ServeHTTP(rw, r)

	assert := require.New(t)
	assert.Regexp(`^\d+ms$`, rw.Header().Get("X-Response-Time"))
	assert.Equal("handled", rw.Body.String())
}

func TestRecoverToOK(t *testing.T) {
	log := logging.NewFakeLogger()
	panicking := http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	r := httptest.NewRequest(http.MethodPost, "/new-verified", nil)
	rw := httptest.NewRecorder()

	RecoverToOK(log)(panicking).ServeHTTP(rw, r)

	assert := require.New(t)
	assert.Equal(http.StatusOK, rw.Code)
	assert.JSONEq(`{"msg": "ok"}`, rw.Body.String())
	assert.NotEmpty(log.Errors())
}
