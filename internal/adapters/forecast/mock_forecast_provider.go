package forecast

import (
	"context"
	"sync"
	"time"

	"sunlight-forecast/internal/domain"
)

// MockForecastProvider returns a canned response and records the locations it was asked for.
type MockForecastProvider struct {
	Raw domain.RawForecast
	Err error

	mu   sync.Mutex
	locs []domain.Location
}

func NewMockForecastProvider(raw domain.RawForecast) *MockForecastProvider {
	return &MockForecastProvider{Raw: raw}
}

func (m *MockForecastProvider) FetchDaily(ctx context.Context, loc domain.Location) (domain.RawForecast, error) {
	m.mu.Lock()
	m.locs = append(m.locs, loc)
	m.mu.Unlock()

	if m.Err != nil {
		return domain.RawForecast{}, m.Err
	}
	return m.Raw, nil
}

func (m *MockForecastProvider) Locations() []domain.Location {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Location(nil), m.locs...)
}

// SyntheticForecast builds a complete response of n consecutive days starting at start.
func SyntheticForecast(start time.Time, radiation, cloud []float64) domain.RawForecast {
	n := len(radiation)
	if len(cloud) < n {
		n = len(cloud)
	}

	raw := domain.RawForecast{
		Time:                  make([]string, n),
		ShortwaveRadiationSum: make([]*float64, n),
		CloudCoverMean:        make([]*float64, n),
	}
	for i := 0; i < n; i++ {
		r, c := radiation[i], cloud[i]
		raw.Time[i] = start.AddDate(0, 0, i).Format(time.DateOnly)
		raw.ShortwaveRadiationSum[i] = &r
		raw.CloudCoverMean[i] = &c
	}
	return raw
}
