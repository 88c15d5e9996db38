package ports

import (
	"context"

	"github.com/lifeline/response-dashboard/internal/core/domain"
)

// Geolocator yields the caller's current position.
type Geolocator interface {
	Locate(ctx context.Context) (domain.Coordinates, error)
}
