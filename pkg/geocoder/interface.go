// Package geocoder defines interfaces and data types used to resolve
// free-text locations into geographic coordinates through a backing provider.
package geocoder

import (
	"context"
)

// Point is a geographic coordinate pair.
type Point struct {
	Lat float64
	Lng float64
}

// Client is the abstraction for geocoding providers. Implementations resolve
// a (city, state) pair into coordinates.
//
//go:generate mockgen -package mockgeocoder -source=interface.go -destination=mock/mockgeocoder.go *
type Client interface {
	// GeocodeCityState resolves a city and state into coordinates. It returns
	// nil (and no error) when the provider cannot resolve the location.
	GeocodeCityState(ctx context.Context, city, state string) (*Point, error)
}
