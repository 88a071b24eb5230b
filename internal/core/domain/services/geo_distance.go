package services

import (
	"context"
	"math"

	"careshift/internal/core/domain/model/kernel"
)

// Earth radius constants for the two reported units.
const (
	earthRadiusKm    = 6371
	earthRadiusMiles = 3959
)

// UnknownDistance is the sentinel returned (in both units) when either
// postcode fails to resolve. Callers rank unknown-distance results last
// instead of failing.
const UnknownDistance = 999

// PostcodeResolver resolves a postcode to geographic coordinates.
// Implementations are treated as unreliable: any error degrades the
// distance to the UnknownDistance sentinel.
type PostcodeResolver interface {
	Resolve(ctx context.Context, postcode kernel.Postcode) (kernel.Coordinates, error)
}

// Distance is a great-circle distance in both reported units, rounded to
// one decimal place.
type Distance struct {
	Km    float64
	Miles float64
}

// IsUnknown reports whether the distance is the unresolved-postcode sentinel.
func (d Distance) IsUnknown() bool {
	return d.Km == UnknownDistance && d.Miles == UnknownDistance
}

// GeoDistanceService computes the great-circle distance between two
// postcodes using the haversine formula.
type GeoDistanceService struct {
	resolver PostcodeResolver
}

// NewGeoDistanceService creates a GeoDistanceService backed by the given resolver.
func NewGeoDistanceService(resolver PostcodeResolver) GeoDistanceService {
	return GeoDistanceService{resolver: resolver}
}

// Between resolves both postcodes and returns their great-circle distance.
// A resolution failure on either side yields the UnknownDistance sentinel
// rather than an error.
func (s GeoDistanceService) Between(ctx context.Context, from, to kernel.Postcode) Distance {
	fromCoords, err := s.resolver.Resolve(ctx, from)
	if err != nil {
		return Distance{Km: UnknownDistance, Miles: UnknownDistance}
	}

	toCoords, err := s.resolver.Resolve(ctx, to)
	if err != nil {
		return Distance{Km: UnknownDistance, Miles: UnknownDistance}
	}

	return Distance{
		Km:    haversine(fromCoords, toCoords, earthRadiusKm),
		Miles: haversine(fromCoords, toCoords, earthRadiusMiles),
	}
}

// haversine computes the great-circle distance between two coordinates on a
// sphere of the given radius, rounded to one decimal place.
func haversine(a, b kernel.Coordinates, radius float64) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return math.Round(radius*c*10) / 10
}
