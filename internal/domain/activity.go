// Package domain contains the core feed entities and the relevance engine.
// This package has no external dependencies (only stdlib) and performs no
// I/O: scoring is a pure transform of (candidates, profile, now).
package domain

import (
	"time"
)

// Difficulty is a declared skill level on a candidate or in a user's
// experience map.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// difficultyRank maps the level ladder to integers so adjacency checks are a
// subtraction. Unknown or absent levels rank -1 and never match.
func difficultyRank(d Difficulty) int {
	switch d {
	case DifficultyBeginner:
		return 0
	case DifficultyIntermediate:
		return 1
	case DifficultyAdvanced:
		return 2
	default:
		return -1
	}
}

// Activity is a user-created place or pursuit that can host events.
// Synced from the upstream backend; the document schema permits partial
// records, so any slice field may be empty.
type Activity struct {
	ID         string `json:"id"`          // internal UUID
	SourceID   string `json:"source_id"`   // e.g. "upstream"
	ExternalID string `json:"external_id"` // upstream document id

	Name       string     `json:"name"`
	Types      []string   `json:"types,omitempty"` // free-text activity-type tags, order preserved
	Location   string     `json:"location,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`

	OwnerID          string `json:"owner_id,omitempty"`
	ParticipantCount int    `json:"participant_count,omitempty"`

	CreatedAt time.Time `json:"created_at"` // creation time upstream, drives freshness
	SyncedAt  time.Time `json:"synced_at"`
}

// Coordinates parses the activity's raw location encoding.
// Returns nil when no parseable location is present.
func (a *Activity) Coordinates() *Coordinates {
	return ParseLocation(a.Location)
}
