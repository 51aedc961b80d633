package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Trantoan12022004/chome2/internal/core"
	applog "github.com/Trantoan12022004/chome2/internal/log"
)

// messageResponse is the error envelope for every non-2xx body.
type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to encode response",
			"error", err, "url", r.URL.Path)
	}
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, messageResponse{Message: msg})
}

// writeError maps a service error onto the wire. Validation failures carry
// their own message, duplicate registrations conflict, everything else is an
// opaque 500 with the detail kept server-side.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case core.IsValidationError(err):
		writeMessage(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrDuplicateEmail):
		writeMessage(w, r, http.StatusConflict, err.Error())
	default:
		fields := applog.NewFields().
			WithError(err).
			WithComponent(applog.ComponentHTTP)
		fields[applog.FieldMethod] = r.Method
		fields[applog.FieldPath] = r.URL.Path
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed", fields.ToSlice()...)
		writeMessage(w, r, http.StatusInternalServerError, "Server error")
	}
}
