package geocode

import (
	"context"
	"fmt"

	"sunlight-forecast/internal/domain"
	"sunlight-forecast/internal/ports"

	"golang.org/x/time/rate"
)

// RateLimitedGeocoder paces calls to a Geocoder. Nominatim's public
// instance allows at most one request per second per client.
type RateLimitedGeocoder struct {
	geocoder ports.Geocoder
	limiter  *rate.Limiter
}

// rps may be fractional (0.5 = one request every two seconds).
func NewRateLimitedGeocoder(geocoder ports.Geocoder, rps float64, burst int) *RateLimitedGeocoder {
	return &RateLimitedGeocoder{
		geocoder: geocoder,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedGeocoder) Resolve(ctx context.Context, query string) (domain.Location, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return domain.Location{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.geocoder.Resolve(ctx, query)
}

var _ ports.Geocoder = (*RateLimitedGeocoder)(nil)
