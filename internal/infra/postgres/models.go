package postgres

import (
	"time"

	"activity-feed-service/internal/domain"

	"github.com/lib/pq"
)

// ActivityModel is the GORM model for the activities table.
type ActivityModel struct {
	ID               string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SourceID         string         `gorm:"type:varchar(50);not null;index:idx_activity_source_external,unique"`
	ExternalID       string         `gorm:"type:varchar(100);not null;index:idx_activity_source_external,unique"`
	Name             string         `gorm:"type:varchar(500);not null"`
	Types            pq.StringArray `gorm:"type:text[]"`
	Location         string         `gorm:"type:varchar(200)"`
	Difficulty       string         `gorm:"type:varchar(20)"`
	OwnerID          string         `gorm:"type:varchar(100);not null;index"`
	ParticipantCount int            `gorm:"default:0"`

	CreatedAt time.Time `gorm:"not null;index"`
	SyncedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for ActivityModel.
func (ActivityModel) TableName() string {
	return "activities"
}

// ToDomain converts ActivityModel to domain.Activity.
func (m *ActivityModel) ToDomain() *domain.Activity {
	return &domain.Activity{
		ID:               m.ID,
		SourceID:         m.SourceID,
		ExternalID:       m.ExternalID,
		Name:             m.Name,
		Types:            m.Types,
		Location:         m.Location,
		Difficulty:       domain.Difficulty(m.Difficulty),
		OwnerID:          m.OwnerID,
		ParticipantCount: m.ParticipantCount,
		CreatedAt:        m.CreatedAt,
		SyncedAt:         m.SyncedAt,
	}
}

// ActivityFromDomain creates an ActivityModel from a domain.Activity.
func ActivityFromDomain(a *domain.Activity) *ActivityModel {
	return &ActivityModel{
		ID:               a.ID,
		SourceID:         a.SourceID,
		ExternalID:       a.ExternalID,
		Name:             a.Name,
		Types:            a.Types,
		Location:         a.Location,
		Difficulty:       string(a.Difficulty),
		OwnerID:          a.OwnerID,
		ParticipantCount: a.ParticipantCount,
		CreatedAt:        a.CreatedAt,
		SyncedAt:         a.SyncedAt,
	}
}

// EventModel is the GORM model for the events table.
type EventModel struct {
	ID            string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SourceID      string         `gorm:"type:varchar(50);not null;index:idx_event_source_external,unique"`
	ExternalID    string         `gorm:"type:varchar(100);not null;index:idx_event_source_external,unique"`
	Title         string         `gorm:"type:varchar(500);not null"`
	ActivityID    string         `gorm:"type:varchar(100);index"`
	ActivityTypes pq.StringArray `gorm:"type:text[]"`
	Difficulty    string         `gorm:"type:varchar(20)"`

	// Location is stored in the upstream wire form so the parser decides
	// how to read it. Latitude and longitude are kept separately when the
	// source provided structured coordinates.
	Location    string   `gorm:"type:varchar(200)"`
	MeetupPoint string   `gorm:"type:varchar(200)"`
	Latitude    *float64 `gorm:"type:decimal(9,6)"`
	Longitude   *float64 `gorm:"type:decimal(9,6)"`

	Date            time.Time      `gorm:"index"`
	Participants    pq.StringArray `gorm:"type:text[]"`
	MaxParticipants int            `gorm:"default:0"`
	OrganizerID     string         `gorm:"type:varchar(100);not null;index"`

	CreatedAt time.Time `gorm:"not null"`
	SyncedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for EventModel.
func (EventModel) TableName() string {
	return "events"
}

// ToDomain converts EventModel to domain.Event.
func (m *EventModel) ToDomain() *domain.Event {
	return &domain.Event{
		ID:              m.ID,
		SourceID:        m.SourceID,
		ExternalID:      m.ExternalID,
		Title:           m.Title,
		ActivityID:      m.ActivityID,
		ActivityTypes:   m.ActivityTypes,
		Difficulty:      domain.Difficulty(m.Difficulty),
		Location:        m.Location,
		MeetupPoint:     m.MeetupPoint,
		Latitude:        m.Latitude,
		Longitude:       m.Longitude,
		Date:            m.Date,
		Participants:    m.Participants,
		MaxParticipants: m.MaxParticipants,
		OrganizerID:     m.OrganizerID,
		CreatedAt:       m.CreatedAt,
		SyncedAt:        m.SyncedAt,
	}
}

// EventFromDomain creates an EventModel from a domain.Event.
func EventFromDomain(e *domain.Event) *EventModel {
	return &EventModel{
		ID:              e.ID,
		SourceID:        e.SourceID,
		ExternalID:      e.ExternalID,
		Title:           e.Title,
		ActivityID:      e.ActivityID,
		ActivityTypes:   e.ActivityTypes,
		Difficulty:      string(e.Difficulty),
		Location:        e.Location,
		MeetupPoint:     e.MeetupPoint,
		Latitude:        e.Latitude,
		Longitude:       e.Longitude,
		Date:            e.Date,
		Participants:    e.Participants,
		MaxParticipants: e.MaxParticipants,
		OrganizerID:     e.OrganizerID,
		CreatedAt:       e.CreatedAt,
		SyncedAt:        e.SyncedAt,
	}
}
