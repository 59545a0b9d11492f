package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"sunlight-forecast/internal/adapters/httpclient"
	"sunlight-forecast/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeocoder(t *testing.T, h http.HandlerFunc) (*NominatimGeocoder, *int32) {
	t.Helper()

	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		h(w, r)
	}))
	t.Cleanup(ts.Close)

	g, err := NewNominatimGeocoder(httpclient.New(time.Second, "sunlight-forecast-test"), ts.URL)
	require.NoError(t, err)
	return g, &hits
}

func TestNominatimResolveFirstCandidate(t *testing.T) {
	g, _ := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "Berlin", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`[
			{"lat":"52.5200066","lon":"13.404954","display_name":"Berlin, Deutschland"},
			{"lat":"44.4686","lon":"-71.1851","display_name":"Berlin, New Hampshire"}
		]`))
	})

	loc, err := g.Resolve(context.Background(), "  Berlin ")
	require.NoError(t, err)
	assert.InDelta(t, 52.5200066, loc.Lat, 1e-9)
	assert.InDelta(t, 13.404954, loc.Lon, 1e-9)
}

func TestNominatimResolveNoCandidates(t *testing.T) {
	g, _ := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := g.Resolve(context.Background(), "Atlantis")
	assert.True(t, errors.Is(err, domain.ErrCityNotFound))
}

func TestNominatimResolveBlankSkipsNetwork(t *testing.T) {
	g, hits := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := g.Resolve(context.Background(), "   ")
	assert.True(t, errors.Is(err, domain.ErrBlankQuery))
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestNominatimResolveTransportFailure(t *testing.T) {
	g, hits := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	_, err := g.Resolve(context.Background(), "Berlin")
	var te *domain.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "geocode", te.Op)
	// no retry
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestNominatimResolveBadCoordinate(t *testing.T) {
	g, _ := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"north","lon":"13.4"}]`))
	})

	_, err := g.Resolve(context.Background(), "Berlin")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrCityNotFound))
}

func TestRateLimitedGeocoderForwards(t *testing.T) {
	mock := NewMockGeocoder(map[string]domain.Location{"Berlin": {Lat: 52.52, Lon: 13.40}})
	g := NewRateLimitedGeocoder(mock, 100, 1)

	loc, err := g.Resolve(context.Background(), "Berlin")
	require.NoError(t, err)
	assert.Equal(t, domain.Location{Lat: 52.52, Lon: 13.40}, loc)
	assert.Equal(t, 1, mock.Calls())
}

func TestRateLimitedGeocoderHonorsContext(t *testing.T) {
	mock := NewMockGeocoder(nil)
	g := NewRateLimitedGeocoder(mock, 0.001, 1)

	// first call consumes the only token
	_, _ = g.Resolve(context.Background(), "x")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := g.Resolve(ctx, "x")
	assert.Error(t, err)
	assert.Equal(t, 1, mock.Calls())
}
