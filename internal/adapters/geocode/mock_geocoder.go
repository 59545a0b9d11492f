package geocode

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"sunlight-forecast/internal/domain"
)

// MockGeocoder resolves from a fixed table and counts calls.
// Unknown places yield domain.ErrCityNotFound; Err, when set, is returned for every call.
type MockGeocoder struct {
	Places map[string]domain.Location
	Err    error

	mu    sync.Mutex
	calls int
}

func NewMockGeocoder(places map[string]domain.Location) *MockGeocoder {
	return &MockGeocoder{Places: places}
}

func (m *MockGeocoder) Resolve(ctx context.Context, query string) (domain.Location, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.Err != nil {
		return domain.Location{}, m.Err
	}

	loc, ok := m.Places[strings.TrimSpace(query)]
	if !ok {
		return domain.Location{}, fmt.Errorf("geocode %q: %w", query, domain.ErrCityNotFound)
	}
	return loc, nil
}

func (m *MockGeocoder) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
