package domain

import (
	"math"
	"strconv"
	"strings"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// locationPrefix marks the prefixed string encoding ("Location: lat, lng")
// produced by the mobile client.
const locationPrefix = "Location:"

// Coordinates is a canonical WGS84 latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ParseLocation normalizes the heterogeneous location encodings found in
// upstream documents into canonical Coordinates.
//
// Accepted variants, tried in this order:
//  1. structured: Coordinates, *Coordinates, or a map carrying numeric
//     "latitude"/"longitude" fields
//  2. a string with the "Location:" prefix followed by "lat, lng"
//  3. a bare "lat,lng" string
//
// Anything else returns nil. Malformed input never produces an error:
// downstream scoring treats a missing location as a zero contribution,
// not a failure.
func ParseLocation(raw any) *Coordinates {
	switch v := raw.(type) {
	case Coordinates:
		return finiteCoords(v.Lat, v.Lng)
	case *Coordinates:
		if v == nil {
			return nil
		}
		return finiteCoords(v.Lat, v.Lng)
	case map[string]any:
		lat, okLat := numericField(v, "latitude")
		lng, okLng := numericField(v, "longitude")
		if !okLat || !okLng {
			return nil
		}
		return finiteCoords(lat, lng)
	case string:
		return parseLocationString(v)
	default:
		return nil
	}
}

// parseLocationString handles both string encodings. The prefixed form is
// reduced to the bare form by stripping everything up to and including the
// prefix, so a single comma-split covers both.
func parseLocationString(s string) *Coordinates {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, locationPrefix); idx >= 0 {
		s = s[idx+len(locationPrefix):]
	}

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil
	}

	return finiteCoords(lat, lng)
}

// numericField reads a float from a loosely-typed document field.
// JSON decoding yields float64, but synced documents occasionally carry
// integers after a round-trip through other tooling.
func numericField(m map[string]any, key string) (float64, bool) {
	switch n := m[key].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func finiteCoords(lat, lng float64) *Coordinates {
	if !isFinite(lat) || !isFinite(lng) {
		return nil
	}
	return &Coordinates{Lat: lat, Lng: lng}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// DistanceKm computes the great-circle distance in kilometers between two
// coordinate pairs using the haversine formula.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)
	deltaLat := toRadians(lat2 - lat1)
	deltaLng := toRadians(lng2 - lng1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
