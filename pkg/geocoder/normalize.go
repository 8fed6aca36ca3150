package geocoder

import (
	"math"
	"strings"
)

// stateAliases maps spelled-out US state names to their postal codes so that
// "Atlanta, Georgia" and "Atlanta, GA" hit the same cache row.
var stateAliases = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY",
}

// NormalizeCityState trims the pair and folds spelled-out state names to
// their postal codes. Two-letter states pass through unchanged.
func NormalizeCityState(city, state string) (string, string) {
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)
	if len(state) > 2 {
		if alias, ok := stateAliases[strings.ToLower(state)]; ok {
			state = alias
		}
	}

	return city, state
}

// SplitLocation parses a free-text location of the form "City, State[, ...]"
// into a normalized (city, state) pair. It returns ok=false when the location
// is blank, marks a remote position, or lacks a state component.
func SplitLocation(location string) (city, state string, ok bool) {
	location = strings.TrimSpace(location)
	if location == "" || strings.HasPrefix(strings.ToLower(location), "remote") {
		return "", "", false
	}

	parts := strings.SplitN(location, ",", 3)
	if len(parts) < 2 {
		return "", "", false
	}

	city, state = NormalizeCityState(parts[0], parts[1])
	if city == "" || state == "" {
		return "", "", false
	}

	return city, state, true
}

// earthRadiusKm is the mean radius of the Earth.
const earthRadiusKm = 6371

// HaversineKm returns the great-circle distance in kilometers between two
// coordinate pairs.
func HaversineKm(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}
