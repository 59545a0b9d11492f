package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"sunlight-forecast/internal/api/dto"
	"sunlight-forecast/internal/render"
	"sunlight-forecast/internal/services"
	"sunlight-forecast/internal/widget"
)

const sessionCookie = "widget_session"

// WidgetHandler serves the forecast widget: its page, form submissions,
// JSON API and chart images. Each browser session has its own controller.
type WidgetHandler struct {
	Sessions *widget.Sessions
	Dates    services.DateFormatter
}

// controller resolves the caller's session, starting one (and setting the
// cookie) when needed. New sessions take their date locale from Accept-Language.
func (h *WidgetHandler) controller(w http.ResponseWriter, r *http.Request) (*widget.Controller, error) {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}

	dates := services.DateFormatterForAcceptLanguage(r.Header.Get("Accept-Language"), h.Dates)
	got, ctrl, err := h.Sessions.Get(id, dates)
	if err != nil {
		return nil, err
	}

	if got != id {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    got,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return ctrl, nil
}

// existing returns the caller's session controller without starting a new
// session. Read-only endpoints use it so cookieless clients cost nothing.
func (h *WidgetHandler) existing(r *http.Request) (*widget.Controller, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}
	return h.Sessions.Lookup(c.Value)
}

// snapshot is the caller's widget state, or the idle state when there is no session.
func (h *WidgetHandler) snapshot(r *http.Request) widget.Regions {
	ctrl, ok := h.existing(r)
	if !ok {
		return widget.Regions{State: widget.Idle}
	}
	return ctrl.Snapshot()
}

// Submit handles the HTML form post and redirects back to the page.
func (h *WidgetHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodPost) {
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid form body")
		return
	}

	ctrl, err := h.controller(w, r)
	if err != nil {
		log.Printf("session lookup failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	// failures are shown in the page's error region
	_ = ctrl.Submit(r.Context(), r.FormValue("city"))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Forecast is the JSON equivalent of Submit: it runs a submission for the
// posted city and returns the resulting widget state.
func (h *WidgetHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodPost) {
		return
	}

	var req dto.ForecastRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	ctrl, err := h.controller(w, r)
	if err != nil {
		log.Printf("session lookup failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	_ = ctrl.Submit(r.Context(), req.City)

	res, err := widgetResponse(ctrl.Snapshot())
	if err != nil {
		log.Printf("build widget response failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

// State returns the current widget regions without submitting anything.
// It never starts a session.
func (h *WidgetHandler) State(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	res, err := widgetResponse(h.snapshot(r))
	if err != nil {
		log.Printf("build widget response failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Chart renders a live chart of the caller's widget as PNG.
func (h *WidgetHandler) Chart(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	id := strings.TrimSuffix(r.PathValue("file"), ".png")

	ctrl, ok := h.existing(r)
	if !ok {
		writeError(w, r, http.StatusNotFound, "chart not found")
		return
	}

	chart, ok := ctrl.Chart(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "chart not found")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := render.RasterizePNG(w, chart); err != nil {
		if errors.Is(err, render.ErrEmptyChart) {
			w.Header().Del("Content-Type")
			writeError(w, r, http.StatusNotFound, "chart has no data")
			return
		}
		log.Printf("rasterize chart failed: id=%s err=%v", id, err)
	}
}

func chartResponse(h *render.ChartHandle) (dto.ChartResponse, error) {
	opt, err := render.OptionJSON(h.Spec)
	if err != nil {
		return dto.ChartResponse{}, err
	}

	return dto.ChartResponse{
		ID:     h.ID,
		Target: h.Target,
		Kind:   string(h.Spec.Kind),
		PNGURL: "/charts/" + h.ID + ".png",
		Option: opt,
	}, nil
}

func widgetResponse(regions widget.Regions) (dto.WidgetResponse, error) {
	res := dto.WidgetResponse{
		State:   string(regions.State),
		City:    regions.City,
		Loading: regions.Loading,
		Error:   regions.Error,
		Cards:   make([]dto.CardResponse, 0, len(regions.Cards)),
	}

	for _, c := range regions.Cards {
		chart, err := chartResponse(c.Chart)
		if err != nil {
			return dto.WidgetResponse{}, err
		}
		res.Cards = append(res.Cards, dto.CardResponse{
			Label:      c.Label,
			Sunlight:   c.Sunlight,
			CloudCover: c.CloudCover,
			Chart:      chart,
		})
	}

	if regions.Trend != nil {
		trend, err := chartResponse(regions.Trend)
		if err != nil {
			return dto.WidgetResponse{}, err
		}
		res.Trend = &trend
	}

	return res, nil
}
