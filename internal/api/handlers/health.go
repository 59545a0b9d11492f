package handlers

import (
	"net/http"
)

// Health is a liveness check that also reports how many widget sessions are live.
func (h *WidgetHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	res := map[string]any{"status": "ok", "sessions": h.Sessions.Len()}
	writeJSON(w, r, http.StatusOK, res)
}
