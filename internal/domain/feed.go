package domain

import (
	"sort"
	"time"
)

// FeedMode selects which pools feed into the assembled list.
type FeedMode string

const (
	// FeedModeSuggested serves ranked suggestions only.
	FeedModeSuggested FeedMode = "suggested"
	// FeedModeInvolved pins the user's own content on top of suggestions.
	FeedModeInvolved FeedMode = "involved"
)

// FeedItemType tags an entry in the merged feed. IDs are unique per type
// within one feed; an activity and an event may share an underlying id.
type FeedItemType string

const (
	FeedItemActivity FeedItemType = "activity"
	FeedItemEvent    FeedItemType = "event"
)

// Suggestion admission rules.
const (
	// MaxSuggestionsPerType caps each ranked pool independently.
	MaxSuggestionsPerType = 20
	// minSuggestionScore is the strict lower bound for admission.
	minSuggestionScore = 10.0
	// involvedScore is the fixed score for the viewer's own content, above
	// the cap of the five weighted factors so it sorts over any suggestion
	// scoring less than 100.
	involvedScore = 100.0
)

// ScoredActivity pairs an activity with its evaluation.
type ScoredActivity struct {
	Activity *Activity `json:"activity"`
	Scored
}

// ScoredEvent pairs an event with its evaluation.
type ScoredEvent struct {
	Event *Event `json:"event"`
	Scored
}

// FeedItem is one entry of the assembled feed.
type FeedItem struct {
	ID        string       `json:"id"`
	Type      FeedItemType `json:"type"`
	Timestamp time.Time    `json:"timestamp"`

	// Exactly one of Activity/Event is set, matching Type.
	Activity *ScoredActivity `json:"activity,omitempty"`
	Event    *ScoredEvent    `json:"event,omitempty"`

	Score        float64  `json:"score"`
	MatchReasons []string `json:"match_reasons,omitempty"`
}

// admit applies the suggestion admission rule. Proximity is a hard gate, not
// just a weighted factor, whenever the viewer's location is known: a
// candidate outside the search radius is excluded regardless of its other
// factors.
func admit(s Scored, viewerHasLocation bool) bool {
	if s.Score <= minSuggestionScore {
		return false
	}
	if viewerHasLocation && s.Factors.LocationScore <= 0 {
		return false
	}
	return true
}

// SuggestActivities scores, filters, ranks, and truncates the public
// activity pool for a profile. The viewer's own activities are excluded.
// Ordering is stable: ties keep input order.
func SuggestActivities(pool []*Activity, p *Profile, now time.Time) []ScoredActivity {
	if p == nil {
		return nil
	}
	viewerHasLocation := p.Coordinates() != nil

	suggestions := make([]ScoredActivity, 0, len(pool))
	for _, a := range pool {
		if a == nil {
			continue
		}
		if p.ID != "" && a.OwnerID == p.ID {
			continue
		}
		s := ScoreActivity(a, p, now)
		if !admit(s, viewerHasLocation) {
			continue
		}
		suggestions = append(suggestions, ScoredActivity{Activity: a, Scored: s})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if len(suggestions) > MaxSuggestionsPerType {
		suggestions = suggestions[:MaxSuggestionsPerType]
	}
	return suggestions
}

// SuggestEvents is the event counterpart of SuggestActivities. Events the
// viewer organizes and events not strictly in the future are excluded before
// scoring.
func SuggestEvents(pool []*Event, p *Profile, now time.Time) []ScoredEvent {
	if p == nil {
		return nil
	}
	viewerHasLocation := p.Coordinates() != nil

	suggestions := make([]ScoredEvent, 0, len(pool))
	for _, e := range pool {
		if e == nil || !e.IsUpcoming(now) {
			continue
		}
		if p.ID != "" && e.OrganizerID == p.ID {
			continue
		}
		s := ScoreEvent(e, p, now)
		if !admit(s, viewerHasLocation) {
			continue
		}
		suggestions = append(suggestions, ScoredEvent{Event: e, Scored: s})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if len(suggestions) > MaxSuggestionsPerType {
		suggestions = suggestions[:MaxSuggestionsPerType]
	}
	return suggestions
}

// BuildFeed merges the candidate pools into one ordered feed.
//
// In involved mode the owned pools are assembled first with the fixed
// involved score, bypassing the scorer, then suggestions from the public
// pools fill in behind them. In suggested mode only the public pools are
// considered. Duplicate (type, id) pairs keep their first occurrence, so an
// item the user owns never reappears as a suggestion.
//
// Final order: score descending, then timestamp descending.
func BuildFeed(
	mode FeedMode,
	p *Profile,
	ownedActivities []*Activity,
	ownedEvents []*Event,
	publicActivities []*Activity,
	publicEvents []*Event,
	now time.Time,
) []FeedItem {
	if p == nil {
		return nil
	}

	type feedKey struct {
		typ FeedItemType
		id  string
	}
	seen := make(map[feedKey]struct{})
	var items []FeedItem

	appendItem := func(item FeedItem) {
		key := feedKey{typ: item.Type, id: item.ID}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		items = append(items, item)
	}

	if mode == FeedModeInvolved {
		for _, a := range ownedActivities {
			if a == nil {
				continue
			}
			s := involvedScored("Your activity")
			appendItem(FeedItem{
				ID:           a.ID,
				Type:         FeedItemActivity,
				Timestamp:    a.CreatedAt,
				Activity:     &ScoredActivity{Activity: a, Scored: s},
				Score:        s.Score,
				MatchReasons: s.MatchReasons,
			})
		}
		for _, e := range ownedEvents {
			if e == nil {
				continue
			}
			reason := "Joined event"
			if p.ID != "" && e.OrganizerID == p.ID {
				reason = "Your event"
			}
			s := involvedScored(reason)
			appendItem(FeedItem{
				ID:           e.ID,
				Type:         FeedItemEvent,
				Timestamp:    eventTimestamp(e),
				Event:        &ScoredEvent{Event: e, Scored: s},
				Score:        s.Score,
				MatchReasons: s.MatchReasons,
			})
		}
	}

	for _, sa := range SuggestActivities(publicActivities, p, now) {
		sa := sa
		appendItem(FeedItem{
			ID:           sa.Activity.ID,
			Type:         FeedItemActivity,
			Timestamp:    sa.Activity.CreatedAt,
			Activity:     &sa,
			Score:        sa.Score,
			MatchReasons: sa.MatchReasons,
		})
	}
	for _, se := range SuggestEvents(publicEvents, p, now) {
		se := se
		appendItem(FeedItem{
			ID:           se.Event.ID,
			Type:         FeedItemEvent,
			Timestamp:    eventTimestamp(se.Event),
			Event:        &se,
			Score:        se.Score,
			MatchReasons: se.MatchReasons,
		})
	}

	sortFeed(items)
	return items
}

// involvedScored builds the fixed evaluation for the viewer's own content.
func involvedScored(reason string) Scored {
	return Scored{
		Score:        involvedScore,
		MatchReasons: []string{reason},
	}
}

// eventTimestamp picks the feed timestamp for an event: the scheduled date
// when set, else the creation time.
func eventTimestamp(e *Event) time.Time {
	if !e.Date.IsZero() {
		return e.Date
	}
	return e.CreatedAt
}

// sortFeed orders items by score descending; exact score ties break by
// timestamp descending (newer first).
func sortFeed(items []FeedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].Timestamp.After(items[j].Timestamp)
	})
}
