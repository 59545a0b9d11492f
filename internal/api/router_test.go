package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"sunlight-forecast/internal/adapters/forecast"
	"sunlight-forecast/internal/adapters/geocode"
	"sunlight-forecast/internal/api"
	"sunlight-forecast/internal/api/dto"
	"sunlight-forecast/internal/domain"
	"sunlight-forecast/internal/services"
	"sunlight-forecast/internal/widget"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts, _ := newTestStack(t)
	return ts
}

func newTestStack(t *testing.T) (*httptest.Server, *widget.Sessions) {
	t.Helper()

	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	raw := forecast.SyntheticForecast(start,
		[]float64{10.1, 12.4, 8.0, 15.2, 3.3, 9.9, 11.0, 7.7},
		[]float64{20, 35, 80, 10, 95, 40, 30, 55},
	)

	g := geocode.NewMockGeocoder(map[string]domain.Location{"Berlin": {Lat: 52.52, Lon: 13.40}})
	svc, err := services.NewForecastService(g, forecast.NewMockForecastProvider(raw))
	require.NoError(t, err)

	sessions := widget.NewSessions(svc)
	ts := httptest.NewServer(api.NewRouter(sessions, services.NewDateFormatter("en_US")))
	t.Cleanup(ts.Close)
	return ts, sessions
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func postForecast(t *testing.T, c *http.Client, base, city string) dto.WidgetResponse {
	t.Helper()

	b, _ := json.Marshal(dto.ForecastRequest{City: city})
	resp, err := c.Post(base+"/api/forecast", "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.WidgetResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestForecastEndToEnd(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)

	res := postForecast(t, c, ts.URL, "Berlin")
	assert.Equal(t, "success", res.State)
	assert.False(t, res.Loading)
	assert.Empty(t, res.Error)
	require.Len(t, res.Cards, 7)
	assert.Equal(t, "Mon, Jan 5", res.Cards[0].Label)
	assert.Equal(t, "Sunlight: 10.1 MJ/m²", res.Cards[0].Sunlight)
	assert.Equal(t, "miniChart6", res.Cards[6].Chart.Target)
	require.NotNil(t, res.Trend)
	assert.Equal(t, "weeklyTrend", res.Trend.Target)

	var option struct {
		XAxis struct {
			Data []string `json:"data"`
		} `json:"xAxis"`
		Tooltip struct {
			Trigger string `json:"trigger"`
		} `json:"tooltip"`
	}
	require.NoError(t, json.Unmarshal(res.Trend.Option, &option))
	assert.Len(t, option.XAxis.Data, 7)
	assert.Equal(t, "axis", option.Tooltip.Trigger)

	// trend PNG is served for the same session
	resp, err := c.Get(ts.URL + res.Trend.PNGURL)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))

	// but not for another session
	resp, err = newClient(t).Get(ts.URL + res.Trend.PNGURL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// a second submission replaces the trend chart
	again := postForecast(t, c, ts.URL, "Berlin")
	require.NotNil(t, again.Trend)
	assert.NotEqual(t, res.Trend.ID, again.Trend.ID)

	resp, err = c.Get(ts.URL + res.Trend.PNGURL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestForecastNotFound(t *testing.T) {
	ts := newTestServer(t)

	res := postForecast(t, newClient(t), ts.URL, "Atlantis")
	assert.Equal(t, "failure", res.State)
	assert.Equal(t, "City not found", res.Error)
	assert.Empty(t, res.Cards)
	assert.Nil(t, res.Trend)
	assert.False(t, res.Loading)
}

func TestForecastBlankCity(t *testing.T) {
	ts := newTestServer(t)

	res := postForecast(t, newClient(t), ts.URL, "   ")
	assert.Equal(t, "idle", res.State)
	assert.Empty(t, res.Cards)
	assert.Empty(t, res.Error)
}

func TestForecastRejectsBadBody(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/forecast", "application/json", strings.NewReader(`{"town":"Berlin"}`))
	require.NoError(t, err)
	var e struct {
		Error     string `json:"error"`
		RequestID string `json:"request_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid json body", e.Error)
	assert.Equal(t, resp.Header.Get("X-Request-ID"), e.RequestID)

	resp, err = http.Get(ts.URL + "/api/forecast")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, http.MethodPost, resp.Header.Get("Allow"))
}

func TestFormSubmitRendersPage(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)

	resp, err := c.PostForm(ts.URL+"/submit", url.Values{"city": {"Berlin"}})
	require.NoError(t, err)
	page, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 7, strings.Count(string(page), `class="card"`))
	assert.Contains(t, string(page), `id="weeklyTrend"`)
	assert.Contains(t, string(page), "Mon, Jan 5")

	resp, err = c.PostForm(ts.URL+"/submit", url.Values{"city": {"Atlantis"}})
	require.NoError(t, err)
	page, _ = io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Contains(t, string(page), "City not found")
	assert.Equal(t, 0, strings.Count(string(page), `class="card"`))
	assert.NotContains(t, string(page), `id="weeklyTrend"`)
}

func TestStateAndHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/widget", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
	var res dto.WidgetResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "idle", res.State)

	resp2, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestReadOnlyEndpointsStartNoSession(t *testing.T) {
	ts, sessions := newTestStack(t)

	for i := 0; i < 50; i++ {
		for _, path := range []string{"/charts/nope.png", "/api/widget", "/"} {
			resp, err := http.Get(ts.URL + path)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Empty(t, resp.Header.Get("Set-Cookie"), path)
		}
	}
	assert.Equal(t, 0, sessions.Len())

	// unknown cookies do not start one either
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/widget", nil)
	req.AddCookie(&http.Cookie{Name: "widget_session", Value: "forged"})
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, sessions.Len())

	// a submission does, and later reads reuse it
	c := newClient(t)
	postForecast(t, c, ts.URL, "Berlin")
	resp, err = c.Get(ts.URL + "/api/widget")
	require.NoError(t, err)
	var res dto.WidgetResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	resp.Body.Close()
	assert.Equal(t, "success", res.State)
	assert.Equal(t, 1, sessions.Len())
}

func TestEvictedSessionChartsAreGone(t *testing.T) {
	ts, sessions := newTestStack(t)
	c := newClient(t)

	res := postForecast(t, c, ts.URL, "Berlin")
	require.NotNil(t, res.Trend)
	require.Equal(t, 1, sessions.Len())

	assert.Equal(t, 1, sessions.Sweep(-time.Second))
	assert.Equal(t, 0, sessions.Len())

	resp, err := c.Get(ts.URL + res.Trend.PNGURL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = c.Get(ts.URL + "/api/widget")
	require.NoError(t, err)
	var state dto.WidgetResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	resp.Body.Close()
	assert.Equal(t, "idle", state.State)
	assert.Empty(t, state.Cards)
}
