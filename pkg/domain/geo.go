package domain

import "time"

// CityCoord caches a geocoded "City, State" lookup. Rows are unique per
// (city, state) compared case-insensitively.
type CityCoord struct {
	City      string    `json:"city"`
	State     string    `json:"state"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	CreatedAt time.Time `json:"createdAt"`
}
