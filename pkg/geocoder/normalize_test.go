package geocoder_test

import (
	"testing"

	"jobboard/pkg/geocoder"

	"github.com/stretchr/testify/require"
)

func TestNormalizeCityState(t *testing.T) {
	tests := []struct {
		name      string
		city      string
		state     string
		wantCity  string
		wantState string
	}{
		{"spelled out state", "Atlanta", "Georgia", "Atlanta", "GA"},
		{"postal code passes through", "Atlanta", "GA", "Atlanta", "GA"},
		{"case insensitive alias", "Austin", "tExAs", "Austin", "TX"},
		{"two word state", "Albuquerque", "New Mexico", "Albuquerque", "NM"},
		{"unknown state untouched", "Toronto", "Ontario", "Toronto", "Ontario"},
		{"whitespace trimmed", "  Boston ", " Massachusetts ", "Boston", "MA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, state := geocoder.NormalizeCityState(tt.city, tt.state)
			require.Equal(t, tt.wantCity, city)
			require.Equal(t, tt.wantState, state)
		})
	}
}

func TestSplitLocation(t *testing.T) {
	tests := []struct {
		name      string
		location  string
		wantCity  string
		wantState string
		wantOK    bool
	}{
		{"city state", "Denver, CO", "Denver", "CO", true},
		{"city spelled out state", "Denver, Colorado", "Denver", "CO", true},
		{"extra components ignored", "Portland, OR, USA", "Portland", "OR", true},
		{"blank", "   ", "", "", false},
		{"remote", "Remote", "", "", false},
		{"remote with suffix", "remote (US only)", "", "", false},
		{"no state", "Chicago", "", "", false},
		{"empty state", "Chicago, ", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, state, ok := geocoder.SplitLocation(tt.location)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantCity, city)
			require.Equal(t, tt.wantState, state)
		})
	}
}

func TestHaversineKm(t *testing.T) {
	nyc := geocoder.Point{Lat: 40.7128, Lng: -74.0060}
	la := geocoder.Point{Lat: 34.0522, Lng: -118.2437}

	// ~3936 km between New York and Los Angeles
	d := geocoder.HaversineKm(nyc, la)
	require.InDelta(t, 3936, d, 25)

	// symmetric
	require.InDelta(t, d, geocoder.HaversineKm(la, nyc), 0.001)

	// zero distance
	require.InDelta(t, 0, geocoder.HaversineKm(nyc, nyc), 0.001)
}
