package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"vrp-client/internal/api/dto"
	"vrp-client/internal/client"
	"vrp-client/internal/domain"
)

const maxProblemBytes = 4 << 20

// ScheduleHandler forwards problem documents to the routing service.
// NewClient returns a fresh client per request; an empty token lets the
// client fall back to the configured default.
type ScheduleHandler struct {
	NewClient func(token string) *client.Client
}

func (h *ScheduleHandler) Solve(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, (*client.Client).Solve)
}

func (h *ScheduleHandler) Fix(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, (*client.Client).Fix)
}

func (h *ScheduleHandler) serve(
	w http.ResponseWriter,
	r *http.Request,
	call func(*client.Client, context.Context) (*domain.Schedule, error),
) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxProblemBytes))
	defer r.Body.Close()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, "could not read request body")
		return
	}

	c := h.NewClient(bearerToken(r.Header.Get("Authorization")))
	if err := c.LoadJSON(body); err != nil {
		writeClientError(w, r, err)
		return
	}

	sched, err := call(c, r.Context())
	if err != nil {
		writeClientError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewScheduleResponse(sched))
}

// bearerToken strips a bearer scheme of any case from an Authorization header.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
