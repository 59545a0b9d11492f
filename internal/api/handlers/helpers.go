package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"sunlight-forecast/internal/platform/obs"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: req_id=%s path=%s err=%v", obs.RequestID(r.Context()), r.URL.Path, err)
	}
}

// writeError echoes the request id so a client report can be matched to the log line.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg, RequestID: obs.RequestID(r.Context())})
}

// allowOnly rejects any method other than m. It reports whether the request may proceed.
func allowOnly(w http.ResponseWriter, r *http.Request, m string) bool {
	if r.Method == m {
		return true
	}
	w.Header().Set("Allow", m)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}
