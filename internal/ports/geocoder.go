package ports

import (
	"context"
	"sunlight-forecast/internal/domain"
)

// Contract for resolving a free-text place name to coordinates.
type Geocoder interface {
	// Return the coordinates of the first match for query.
	// Fails with domain.ErrCityNotFound when nothing matches.
	Resolve(ctx context.Context, query string) (domain.Location, error)
}
