package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"sunlight-forecast/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSONSendsHeadersAndDecodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "Berlin Mitte", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"name":"ok"}`))
	}))
	defer ts.Close()

	c := New(time.Second, "test-agent")

	var out struct {
		Name string `json:"name"`
	}
	err := c.GetJSON(context.Background(), "test", ts.URL, url.Values{"q": {"Berlin Mitte"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Name)
}

func TestGetJSONStatusIsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream busy", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := New(time.Second, "")
	err := c.GetJSON(context.Background(), "test", ts.URL, nil, &struct{}{})
	require.Error(t, err)

	var te *domain.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "test", te.Op)

	var se *domain.HTTPStatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.Equal(t, "upstream busy", se.Body)
}

func TestGetJSONNetworkFailureIsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	addr := ts.URL
	ts.Close()

	c := New(time.Second, "")
	err := c.GetJSON(context.Background(), "test", addr, nil, &struct{}{})

	var te *domain.TransportError
	assert.True(t, errors.As(err, &te))
}
