package response

import (
	"encoding/json"
	"net/http"
)

type okResponse struct {
	Msg string `json:"msg"`
}

// RenderOK writes the generic acknowledgement body. The verification and
// webhook paths answer with it unconditionally: no internal failure is
// distinguishable to the caller.
func RenderOK(rw http.ResponseWriter) {
	Render(rw, okResponse{Msg: "ok"}, http.StatusOK)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
