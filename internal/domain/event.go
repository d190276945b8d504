package domain

import (
	"time"
)

// Event is a scheduled, dated occurrence under an activity, with its own
// location and capacity.
type Event struct {
	ID         string `json:"id"`
	SourceID   string `json:"source_id"`
	ExternalID string `json:"external_id"`

	Title         string     `json:"title"`
	ActivityID    string     `json:"activity_id,omitempty"`
	ActivityTypes []string   `json:"activity_types,omitempty"`
	Difficulty    Difficulty `json:"difficulty,omitempty"`

	// Location variants, tried in priority order by Coordinates.
	Location    string   `json:"location,omitempty"`
	MeetupPoint string   `json:"meetup_point,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`

	Date            time.Time `json:"date"` // scheduled occurrence time
	Participants    []string  `json:"participants,omitempty"`
	MaxParticipants int       `json:"max_participants,omitempty"` // 0 means capacity unknown
	OrganizerID     string    `json:"organizer_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	SyncedAt  time.Time `json:"synced_at"`
}

// Coordinates resolves the event's location, trying the raw location string,
// then the meetup point, then the structured latitude/longitude fields.
func (e *Event) Coordinates() *Coordinates {
	if c := ParseLocation(e.Location); c != nil {
		return c
	}
	if c := ParseLocation(e.MeetupPoint); c != nil {
		return c
	}
	if e.Latitude != nil && e.Longitude != nil {
		return finiteCoords(*e.Latitude, *e.Longitude)
	}
	return nil
}

// HasSpots reports whether the event still has open capacity.
// Unknown capacity (MaxParticipants == 0) never reports open spots.
func (e *Event) HasSpots() bool {
	return len(e.Participants) < e.MaxParticipants
}

// IsUpcoming reports whether the event is scheduled strictly in the future.
func (e *Event) IsUpcoming(now time.Time) bool {
	return e.Date.After(now)
}
