package events

import (
	"fmt"
	"time"

	"activity-feed-service/internal/domain"
)

// Response represents the JSON response from the upstream events endpoint.
type Response struct {
	Events []EventDoc `json:"events"`
	Total  int        `json:"total"`
}

// EventDoc is a single event document as stored upstream. Older documents
// carry a location string, newer ones structured latitude/longitude, and
// some only a free-text meetup point.
type EventDoc struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	ActivityID      string   `json:"activity_id"`
	ActivityTypes   []string `json:"activity_types"`
	Difficulty      string   `json:"difficulty"`
	Location        any      `json:"location"`
	MeetupPoint     string   `json:"meetup_point"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Date            string   `json:"date"`
	Participants    []string `json:"participants"`
	MaxParticipants int      `json:"max_participants"`
	OrganizerID     string   `json:"organizer_id"`
	CreatedAt       string   `json:"created_at"`
}

// ToDomain converts an EventDoc to a domain.Event.
func (d *EventDoc) ToDomain(sourceID string) *domain.Event {
	date, _ := time.Parse(time.RFC3339, d.Date)
	createdAt, _ := time.Parse(time.RFC3339, d.CreatedAt)

	return &domain.Event{
		SourceID:        sourceID,
		ExternalID:      d.ID,
		Title:           d.Title,
		ActivityID:      d.ActivityID,
		ActivityTypes:   d.ActivityTypes,
		Difficulty:      domain.Difficulty(d.Difficulty),
		Location:        locationString(d.Location),
		MeetupPoint:     d.MeetupPoint,
		Latitude:        d.Latitude,
		Longitude:       d.Longitude,
		Date:            date,
		Participants:    d.Participants,
		MaxParticipants: d.MaxParticipants,
		OrganizerID:     d.OrganizerID,
		CreatedAt:       createdAt,
	}
}

// locationString keeps string encodings intact for the parser and flattens
// structured objects to "lat,lng".
func locationString(raw any) string {
	if s, ok := raw.(string); ok {
		return s
	}
	if c := domain.ParseLocation(raw); c != nil {
		return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
	}
	return ""
}
