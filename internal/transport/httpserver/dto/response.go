package dto

import (
	"time"

	"activity-feed-service/internal/app/service"
	"activity-feed-service/internal/domain"
)

// FactorsResponse is the factor breakdown of one scored candidate.
type FactorsResponse struct {
	TypeMatch         float64 `json:"type_match"`
	LocationScore     float64 `json:"location_score"`
	DifficultyMatch   float64 `json:"difficulty_match"`
	AvailabilityMatch float64 `json:"availability_match"`
	FreshnessScore    float64 `json:"freshness_score"`
}

func fromFactors(f domain.RelevanceFactors) FactorsResponse {
	return FactorsResponse{
		TypeMatch:         f.TypeMatch,
		LocationScore:     f.LocationScore,
		DifficultyMatch:   f.DifficultyMatch,
		AvailabilityMatch: f.AvailabilityMatch,
		FreshnessScore:    f.FreshnessScore,
	}
}

// ActivityResponse represents an activity in API responses.
type ActivityResponse struct {
	ID               string   `json:"id"`
	SourceID         string   `json:"source_id"`
	ExternalID       string   `json:"external_id"`
	Name             string   `json:"name"`
	Types            []string `json:"types,omitempty"`
	Location         string   `json:"location,omitempty"`
	Difficulty       string   `json:"difficulty,omitempty"`
	OwnerID          string   `json:"owner_id,omitempty"`
	ParticipantCount int      `json:"participant_count"`
	CreatedAt        string   `json:"created_at"`
	SyncedAt         string   `json:"synced_at"`
}

// FromDomainActivity converts a domain.Activity to an ActivityResponse.
func FromDomainActivity(a *domain.Activity) ActivityResponse {
	return ActivityResponse{
		ID:               a.ID,
		SourceID:         a.SourceID,
		ExternalID:       a.ExternalID,
		Name:             a.Name,
		Types:            a.Types,
		Location:         a.Location,
		Difficulty:       string(a.Difficulty),
		OwnerID:          a.OwnerID,
		ParticipantCount: a.ParticipantCount,
		CreatedAt:        a.CreatedAt.Format(time.RFC3339),
		SyncedAt:         a.SyncedAt.Format(time.RFC3339),
	}
}

// EventResponse represents an event in API responses.
type EventResponse struct {
	ID              string   `json:"id"`
	SourceID        string   `json:"source_id"`
	ExternalID      string   `json:"external_id"`
	Title           string   `json:"title"`
	ActivityID      string   `json:"activity_id,omitempty"`
	ActivityTypes   []string `json:"activity_types,omitempty"`
	Difficulty      string   `json:"difficulty,omitempty"`
	Location        string   `json:"location,omitempty"`
	MeetupPoint     string   `json:"meetup_point,omitempty"`
	Date            string   `json:"date,omitempty"`
	Participants    []string `json:"participants,omitempty"`
	MaxParticipants int      `json:"max_participants"`
	OrganizerID     string   `json:"organizer_id,omitempty"`
	CreatedAt       string   `json:"created_at"`
	SyncedAt        string   `json:"synced_at"`
}

// FromDomainEvent converts a domain.Event to an EventResponse.
func FromDomainEvent(e *domain.Event) EventResponse {
	resp := EventResponse{
		ID:              e.ID,
		SourceID:        e.SourceID,
		ExternalID:      e.ExternalID,
		Title:           e.Title,
		ActivityID:      e.ActivityID,
		ActivityTypes:   e.ActivityTypes,
		Difficulty:      string(e.Difficulty),
		Location:        e.Location,
		MeetupPoint:     e.MeetupPoint,
		Participants:    e.Participants,
		MaxParticipants: e.MaxParticipants,
		OrganizerID:     e.OrganizerID,
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
		SyncedAt:        e.SyncedAt.Format(time.RFC3339),
	}
	if !e.Date.IsZero() {
		resp.Date = e.Date.Format(time.RFC3339)
	}
	return resp
}

// FeedItemResponse is one entry of the assembled feed.
type FeedItemResponse struct {
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	Timestamp    string            `json:"timestamp"`
	Score        float64           `json:"score"`
	MatchReasons []string          `json:"match_reasons,omitempty"`
	Factors      FactorsResponse   `json:"relevance_factors"`
	Activity     *ActivityResponse `json:"activity,omitempty"`
	Event        *EventResponse    `json:"event,omitempty"`
}

// FeedResponse represents the feed endpoint response.
type FeedResponse struct {
	UserID string             `json:"user_id"`
	Mode   string             `json:"mode"`
	Count  int                `json:"count"`
	Items  []FeedItemResponse `json:"items"`
}

// FromFeedItems converts assembled feed items to a FeedResponse.
func FromFeedItems(userID string, mode domain.FeedMode, items []domain.FeedItem) FeedResponse {
	resp := FeedResponse{
		UserID: userID,
		Mode:   string(mode),
		Count:  len(items),
		Items:  make([]FeedItemResponse, len(items)),
	}

	for i, item := range items {
		out := FeedItemResponse{
			ID:           item.ID,
			Type:         string(item.Type),
			Timestamp:    item.Timestamp.Format(time.RFC3339),
			Score:        item.Score,
			MatchReasons: item.MatchReasons,
		}

		switch {
		case item.Activity != nil:
			activity := FromDomainActivity(item.Activity.Activity)
			out.Activity = &activity
			out.Factors = fromFactors(item.Activity.Factors)
		case item.Event != nil:
			event := FromDomainEvent(item.Event.Event)
			out.Event = &event
			out.Factors = fromFactors(item.Event.Factors)
		}

		resp.Items[i] = out
	}

	return resp
}

// SyncResultResponse represents the outcome of syncing one source.
type SyncResultResponse struct {
	Source     string `json:"source"`
	Activities int    `json:"activities"`
	Events     int    `json:"events"`
	Duration   string `json:"duration"`
	Error      string `json:"error,omitempty"`
}

// SyncResponse represents the response for a sync-all operation.
type SyncResponse struct {
	Results []SyncResultResponse `json:"results"`
	Summary SyncSummary          `json:"summary"`
}

// SyncSummary holds totals of one sync run.
type SyncSummary struct {
	TotalSynced int `json:"total_synced"`
	SourcesOK   int `json:"sources_ok"`
	SourcesFail int `json:"sources_fail"`
}

// FromSyncResults converts service sync results to a SyncResponse.
func FromSyncResults(results []service.SyncResult) SyncResponse {
	resp := SyncResponse{
		Results: make([]SyncResultResponse, len(results)),
	}

	for i, r := range results {
		errMsg := ""
		if r.Error != nil {
			errMsg = r.Error.Error()
			resp.Summary.SourcesFail++
		} else {
			resp.Summary.TotalSynced += r.Activities + r.Events
			resp.Summary.SourcesOK++
		}

		resp.Results[i] = SyncResultResponse{
			Source:     r.Source,
			Activities: r.Activities,
			Events:     r.Events,
			Duration:   r.Duration.String(),
			Error:      errMsg,
		}
	}

	return resp
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// StatsResponse represents dashboard stats.
type StatsResponse struct {
	Activities int64            `json:"activities"`
	Events     int64            `json:"events"`
	BySource   map[string]int64 `json:"by_source,omitempty"`
}
