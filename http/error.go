package http

import (
	"encoding/json"
	"net/http"

	"github.com/fwojciec/readdoc"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	readdoc.EINVALID:      http.StatusBadRequest,
	readdoc.EMALFORMED:    http.StatusBadRequest,
	readdoc.EUNAUTHORIZED: http.StatusUnauthorized,
	readdoc.EFORBIDDEN:    http.StatusForbidden,
	readdoc.ENOTFOUND:     http.StatusNotFound,
	readdoc.ERATELIMIT:    http.StatusTooManyRequests,
	readdoc.EINTERNAL:     http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error writes err as a JSON error response. Internal errors are logged and
// their details withheld from the client.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := readdoc.ErrorCode(err), readdoc.ErrorMessage(err)
	if code == readdoc.EINTERNAL {
		s.Logger.Error("http error", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, ErrorStatusCode(code), &ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
