package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lifeline/response-dashboard/internal/core/domain"
)

// DevicePositionHeader carries the browser's geolocation fix as "lat,lng".
const DevicePositionHeader = "X-Device-Position"

var errNoDevicePosition = errors.New("device position not shared")

// headerGeolocator resolves the caller's position from the device position header.
type headerGeolocator struct {
	raw string
}

func (g headerGeolocator) Locate(context.Context) (domain.Coordinates, error) {
	if strings.TrimSpace(g.raw) == "" {
		return domain.Coordinates{}, errNoDevicePosition
	}
	latStr, lngStr, ok := strings.Cut(g.raw, ",")
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("malformed device position %q", g.raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("device latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("device longitude: %w", err)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return domain.Coordinates{}, fmt.Errorf("device position out of range: %v,%v", lat, lng)
	}
	return domain.Coordinates{Lat: lat, Lng: lng}, nil
}
