package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/handler/http/response"
)

type validatable interface {
	Validate() error
}

// decodeAndValidate reads a JSON body into req and validates it.
// On failure the error response is already written and false is returned.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, op string, req validatable) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	if err := req.Validate(); err != nil {
		slog.Error(op+" validate error", "error", err)
		response.HandleError(w, err)
		return false
	}
	return true
}
