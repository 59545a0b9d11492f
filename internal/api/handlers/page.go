package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Page renders the widget for the caller's session, or an empty widget.
func (h *WidgetHandler) Page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	// sessions start on the first submission, not on a page view
	view, err := widgetResponse(h.snapshot(r))
	if err != nil {
		log.Printf("build widget view failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	// render to a buffer so a template error never yields a half page
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		log.Printf("render page failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("write page failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}
