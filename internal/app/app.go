package app

import (
	"net/http"
	"path"
	"strings"

	"gatekeeper/internal/app/deps"
	"gatekeeper/internal/app/services"
	"gatekeeper/internal/http/handlers/response"
	"gatekeeper/internal/http/handlers/telegram"
	"gatekeeper/internal/http/handlers/verified"
	"gatekeeper/internal/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	router := chi.NewRouter()

	router.Use(middleware.DropCrawlers)
	router.Use(middleware.ResponseTime)
	router.Use(middleware.RecoverToOK(deps.Logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	router.Method(
		http.MethodPost,
		"/tg-webhook",
		telegram.New(deps.Logger, s.AnnounceChannel, s.IssueChallenge, s.SaveChannelConfig, deps.Sender),
	)
	router.Method(
		http.MethodPost,
		"/new-verified",
		verified.New(deps.Logger, s.ResolveVerification),
	)

	router.NotFound(staticOrOK("./static/sg", "./static/tweb"))

	return &http.Server{
		Handler: router,
		Addr:    deps.Config.Address(),
	}
}

// staticOrOK serves the challenge web-app assets. Any path containing "sg"
// is served from the challenge root; "tweb" paths and dotted filenames come
// from the webview root. Anything else gets the generic ok body, so probing
// the server reveals nothing about its routes.
func staticOrOK(challengeRoot, webviewRoot string) http.HandlerFunc {
	challengeFiles := http.FileServer(http.Dir(challengeRoot))
	webviewFiles := http.FileServer(http.Dir(webviewRoot))

	return func(rw http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "sg"):
			serveAfterMarker(challengeFiles, "sg", rw, r)
		case strings.Contains(r.URL.Path, "tweb"):
			serveAfterMarker(webviewFiles, "tweb", rw, r)
		case strings.Contains(path.Base(r.URL.Path), "."):
			webviewFiles.ServeHTTP(rw, r)
		default:
			response.RenderOK(rw)
		}
	}
}

// serveAfterMarker serves the part of the path after the first occurrence of
// the marker, so /sg, /sg/app.js and /webapp/sg/app.js all resolve inside the
// same root.
func serveAfterMarker(files http.Handler, marker string, rw http.ResponseWriter, r *http.Request) {
	rest := r.URL.Path[strings.Index(r.URL.Path, marker)+len(marker):]
	if !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	relocated := r.Clone(r.Context())
	relocated.URL.Path = rest
	files.ServeHTTP(rw, relocated)
}
