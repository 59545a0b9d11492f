package ports

import (
	"context"
	"sunlight-forecast/internal/domain"
)

// Contract for retrieving the daily radiation / cloud cover time series at a location.
type ForecastProvider interface {
	// Fails with domain.ErrDataUnavailable when the response lacks any required array.
	FetchDaily(ctx context.Context, loc domain.Location) (domain.RawForecast, error)
}
