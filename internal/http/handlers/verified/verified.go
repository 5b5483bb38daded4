package verified

import (
	"encoding/json"
	"io"
	"net/http"

	"gatekeeper/internal/core/domain/attempt"
	c "gatekeeper/internal/core/domain/common"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/domain/verification"
	"gatekeeper/internal/core/services"
	service "gatekeeper/internal/core/services/resolve_verification"
	"gatekeeper/internal/http/handlers/response"
)

// Handler adapts the verification callback POSTed by the web challenge
// surface. Whatever happens inside, the caller gets 200 and the generic ok
// body: failures are an internal matter.
type Handler struct {
	log                 logging.Logger
	resolveVerification services.Service[service.Input, service.Result]
}

func New(
	log logging.Logger,
	resolveVerification services.Service[service.Input, service.Result],
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if resolveVerification == nil {
		panic(e.NewNilArgumentError("resolveVerification"))
	}
	return &Handler{log: log, resolveVerification: resolveVerification}
}

type user struct {
	ID       interface{} `json:"id"`
	Username string      `json:"username"`
}

type payload struct {
	Storage map[string]interface{} `json:"storage"`
	User    *user                  `json:"user"`
	Attempt string                 `json:"attempt"`
}

func (p *payload) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(p)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	defer response.RenderOK(rw)

	p := payload{}
	if err := p.FromJSON(r.Body); err != nil {
		h.log.Info(
			r.Context(),
			"Could not decode verification callback body.",
			logging.Entry("err", err),
		)
		return
	}

	_, err := h.resolveVerification.Run(r.Context(), service.Input{
		AttemptID: attemptID(&p, r),
		Storage:   verification.Storage(p.Storage),
		User:      explicitUser(&p),
	})
	if err != nil {
		h.log.Info(
			r.Context(),
			"Verification callback not resolved.",
			logging.Entry("err", err),
		)
	}
}

func attemptID(p *payload, r *http.Request) c.Optional[attempt.ID] {
	raw := p.Attempt
	if raw == "" {
		raw = r.URL.Query().Get("attempt")
	}
	return c.NewOptional(attempt.ID(raw), raw != "")
}

func explicitUser(p *payload) c.Optional[verification.User] {
	if p.User == nil {
		return c.Optional[verification.User]{}
	}
	explicit := verification.User{Username: p.User.Username}
	if id, ok := verification.CoerceID(p.User.ID); ok {
		explicit.ID = id
	}
	return c.NewOptional(explicit, true)
}
