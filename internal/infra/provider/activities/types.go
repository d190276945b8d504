package activities

import (
	"fmt"
	"time"

	"activity-feed-service/internal/domain"
)

// Response represents the JSON response from the upstream activities endpoint.
type Response struct {
	Activities []ActivityDoc `json:"activities"`
	Total      int           `json:"total"`
}

// ActivityDoc is a single activity document as the upstream backend stores
// it. The schema permits partial records, so every field may be absent, and
// location carries whichever encoding the client app wrote.
type ActivityDoc struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Types        []string `json:"types"`
	Location     any      `json:"location"`
	Difficulty   string   `json:"difficulty"`
	OwnerID      string   `json:"owner_id"`
	Participants []string `json:"participants"`
	CreatedAt    string   `json:"created_at"`
}

// ToDomain converts an ActivityDoc to a domain.Activity.
func (d *ActivityDoc) ToDomain(sourceID string) *domain.Activity {
	createdAt, _ := time.Parse(time.RFC3339, d.CreatedAt)

	return &domain.Activity{
		SourceID:         sourceID,
		ExternalID:       d.ID,
		Name:             d.Name,
		Types:            d.Types,
		Location:         locationString(d.Location),
		Difficulty:       domain.Difficulty(d.Difficulty),
		OwnerID:          d.OwnerID,
		ParticipantCount: len(d.Participants),
		CreatedAt:        createdAt,
	}
}

// locationString normalizes the wire location to a string. String encodings
// pass through untouched so the parser stays the single place that
// interprets them; structured objects are flattened to "lat,lng".
func locationString(raw any) string {
	if s, ok := raw.(string); ok {
		return s
	}
	if c := domain.ParseLocation(raw); c != nil {
		return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
	}
	return ""
}
