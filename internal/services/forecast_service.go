package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sunlight-forecast/internal/domain"
	"sunlight-forecast/internal/platform/obs"
	"sunlight-forecast/internal/ports"
)

// ForecastService runs the fetch half of a submission: geocode, then
// forecast at the resolved location, then shape the response.
type ForecastService struct {
	Geocoder ports.Geocoder
	Provider ports.ForecastProvider
}

func NewForecastService(geocoder ports.Geocoder, provider ports.ForecastProvider) (*ForecastService, error) {
	if geocoder == nil {
		return nil, errors.New("forecast service: geocoder is nil")
	}
	if provider == nil {
		return nil, errors.New("forecast service: forecast provider is nil")
	}
	return &ForecastService{Geocoder: geocoder, Provider: provider}, nil
}

// Fetch returns the daily series for city. Each step only starts once the
// previous one has succeeded; the first error is returned wrapped.
func (s *ForecastService) Fetch(ctx context.Context, city string) (_ domain.ForecastSeries, err error) {
	defer obs.Time(ctx, "forecast.Fetch")(&err)

	city = strings.TrimSpace(city)
	if city == "" {
		return nil, domain.ErrBlankQuery
	}

	loc, err := s.Geocoder.Resolve(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", city, err)
	}

	raw, err := s.Provider.FetchDaily(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", city, err)
	}

	series, err := BuildSeries(raw)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", city, err)
	}

	return series, nil
}
