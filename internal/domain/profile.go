package domain

import "strings"

// DefaultSearchRadiusKm applies when a profile declares no search radius.
const DefaultSearchRadiusKm = 50.0

// Profile is the subset of a user profile relevant to scoring. Fetched from
// the upstream auth/profile layer; every field may be absent and every factor
// has a defined zero-contribution behavior for each absence.
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`

	// Disciplines are the user's declared interests, free-text labels.
	Disciplines []string `json:"disciplines,omitempty"`

	// LocationCoords carries whichever encoding upstream stored: a
	// structured object or one of the string forms. Location is the older
	// fallback field. Both go through ParseLocation.
	LocationCoords any    `json:"location_coords,omitempty"`
	Location       string `json:"location,omitempty"`

	// SearchRadiusKm is the maximum relevant distance. Zero or negative
	// means unset.
	SearchRadiusKm float64 `json:"search_radius_km,omitempty"`

	// ExperienceLevels maps lower-cased activity types to declared levels.
	ExperienceLevels map[string]Difficulty `json:"experience_levels,omitempty"`
}

// Coordinates resolves the user's home location, preferring LocationCoords
// over the legacy Location field. Returns nil when neither parses.
func (p *Profile) Coordinates() *Coordinates {
	if c := ParseLocation(p.LocationCoords); c != nil {
		return c
	}
	return ParseLocation(p.Location)
}

// Radius returns the profile's search radius in kilometers, defaulted when
// unset.
func (p *Profile) Radius() float64 {
	if p.SearchRadiusKm > 0 {
		return p.SearchRadiusKm
	}
	return DefaultSearchRadiusKm
}

// ExperienceFor looks up the user's declared level for an activity type.
// The lookup key is the lower-cased type tag.
func (p *Profile) ExperienceFor(activityType string) (Difficulty, bool) {
	if len(p.ExperienceLevels) == 0 {
		return "", false
	}
	level, ok := p.ExperienceLevels[strings.ToLower(activityType)]
	return level, ok
}
