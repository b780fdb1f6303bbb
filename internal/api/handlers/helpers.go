package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"vrp-client/internal/domain"
	"vrp-client/internal/platform/obs"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: req_id=%s method=%s path=%s err=%v",
			obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeClientError maps client errors to gateway statuses.
// Remote errors keep the routing service's status and message.
func writeClientError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := obs.RequestID(r.Context())

	var re *domain.RemoteError
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &re):
		writeError(w, r, re.StatusCode, re.Message)
	case errors.Is(err, domain.ErrDecode):
		log.Printf("schedule decode failed: req_id=%s path=%s err=%v", reqID, r.URL.Path, err)
		writeError(w, r, http.StatusBadGateway, err.Error())
	default:
		log.Printf("routing request failed: req_id=%s path=%s err=%v", reqID, r.URL.Path, err)
		writeError(w, r, http.StatusBadGateway, "routing service unavailable")
	}
}
