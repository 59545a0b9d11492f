package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"sunlight-forecast/internal/adapters/httpclient"
	"sunlight-forecast/internal/domain"
	"sunlight-forecast/internal/platform/obs"
)

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NominatimGeocoder implements ports.Geocoder using the OpenStreetMap
// Nominatim search endpoint. Only the first candidate is used.
type NominatimGeocoder struct {
	client  *httpclient.Client
	baseURL string
}

func NewNominatimGeocoder(client *httpclient.Client, baseURL string) (*NominatimGeocoder, error) {
	if client == nil {
		return nil, errors.New("nominatim geocoder: http client is nil")
	}
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("nominatim geocoder: base url is empty")
	}

	return &NominatimGeocoder{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (g *NominatimGeocoder) Resolve(ctx context.Context, query string) (_ domain.Location, err error) {
	defer obs.Time(ctx, "nominatim.Resolve")(&err)

	q := strings.TrimSpace(query)
	if q == "" {
		return domain.Location{}, domain.ErrBlankQuery
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", q)

	var results []searchResult
	if err := g.client.GetJSON(ctx, "geocode", g.baseURL+"/search", params, &results); err != nil {
		return domain.Location{}, fmt.Errorf("geocode %q: %w", q, err)
	}

	if len(results) == 0 {
		return domain.Location{}, fmt.Errorf("geocode %q: %w", q, domain.ErrCityNotFound)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(results[0].Lat), 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("geocode %q: parse lat %q: %w", q, results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(results[0].Lon), 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("geocode %q: parse lon %q: %w", q, results[0].Lon, err)
	}

	return domain.Location{Lat: lat, Lon: lon}, nil
}
