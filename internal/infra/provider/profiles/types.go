package profiles

import (
	"strings"

	"activity-feed-service/internal/domain"
)

// ProfileDoc is a user profile document as stored upstream. Every field may
// be absent; location_coords carries whichever encoding the client app wrote.
type ProfileDoc struct {
	ID               string            `json:"id"`
	DisplayName      string            `json:"display_name"`
	Disciplines      []string          `json:"disciplines"`
	LocationCoords   any               `json:"location_coords"`
	Location         string            `json:"location"`
	SearchRadiusKm   float64           `json:"search_radius_km"`
	ExperienceLevels map[string]string `json:"experience_levels"`
}

// ToDomain converts a ProfileDoc to a domain.Profile. Experience level keys
// are lower-cased so scoring lookups are case-insensitive.
func (d *ProfileDoc) ToDomain() *domain.Profile {
	var levels map[string]domain.Difficulty
	if len(d.ExperienceLevels) > 0 {
		levels = make(map[string]domain.Difficulty, len(d.ExperienceLevels))
		for activityType, level := range d.ExperienceLevels {
			levels[strings.ToLower(activityType)] = domain.Difficulty(level)
		}
	}

	return &domain.Profile{
		ID:               d.ID,
		DisplayName:      d.DisplayName,
		Disciplines:      d.Disciplines,
		LocationCoords:   d.LocationCoords,
		Location:         d.Location,
		SearchRadiusKm:   d.SearchRadiusKm,
		ExperienceLevels: levels,
	}
}
