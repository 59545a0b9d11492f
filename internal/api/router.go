package api

import (
	"net/http"

	"sunlight-forecast/internal/api/handlers"
	"sunlight-forecast/internal/services"
	"sunlight-forecast/internal/widget"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers only see the session registry, never the adapters behind it.
func NewRouter(sessions *widget.Sessions, dates services.DateFormatter) http.Handler {
	mux := http.NewServeMux()

	widgetHandler := &handlers.WidgetHandler{
		Sessions: sessions,
		Dates:    dates,
	}

	mux.HandleFunc("/health", widgetHandler.Health)
	mux.HandleFunc("/", widgetHandler.Page)
	mux.HandleFunc("/submit", widgetHandler.Submit)
	mux.HandleFunc("/api/widget", widgetHandler.State)
	mux.HandleFunc("/api/forecast", widgetHandler.Forecast)
	mux.HandleFunc("/charts/{file}", widgetHandler.Chart)

	return loggingMiddleware(mux)
}
