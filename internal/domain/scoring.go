package domain

import (
	"fmt"
	"strings"
	"time"
)

// Factor weight caps. The five weighted factors alone cap at 100; the flat
// bonuses below are additive on top, so the total score has no fixed upper
// bound.
const (
	typeMatchWeight  = 40.0
	locationWeight   = 30.0
	difficultyWeight = 15.0
	freshnessWeight  = 5.0
)

// Difficulty ladder awards.
const (
	difficultyExactAward  = 15.0
	difficultyGrowthAward = 10.0 // user one level below the candidate
	difficultyEasierAward = 8.0  // user one level above the candidate
)

// Flat bonuses.
const (
	timingBonus     = 10.0 // event within the next 7 days
	spotsBonus      = 5.0  // event with open capacity
	popularityBonus = 2.0  // activity with more than 5 participants
)

// Distance bands for proximity reason text, in kilometers.
const (
	veryCloseKm = 5.0
	nearbyKm    = 15.0
)

// timingWindow is how far ahead an event still earns the timing bonus.
const timingWindow = 168 * time.Hour

// RelevanceFactors is the per-factor breakdown of a candidate's score.
// Each value is non-negative and bounded by that factor's weight cap
// (AvailabilityMatch by the sum of the timing and spots bonuses).
type RelevanceFactors struct {
	TypeMatch         float64 `json:"type_match"`
	LocationScore     float64 `json:"location_score"`
	DifficultyMatch   float64 `json:"difficulty_match"`
	AvailabilityMatch float64 `json:"availability_match"`
	FreshnessScore    float64 `json:"freshness_score"`
}

// Scored is the result of evaluating one candidate against one profile.
// MatchReasons preserve the order factors were evaluated in.
type Scored struct {
	Score        float64          `json:"score"`
	MatchReasons []string         `json:"match_reasons,omitempty"`
	Factors      RelevanceFactors `json:"relevance_factors"`
}

func (s *Scored) reason(text string) {
	s.MatchReasons = append(s.MatchReasons, text)
}

// ScoreActivity computes the weighted relevance of an activity for a profile.
// now is injected so scoring stays deterministic under test.
func ScoreActivity(a *Activity, p *Profile, now time.Time) Scored {
	var s Scored
	if a == nil || p == nil {
		return s
	}

	s.scoreTypeAffinity(a.Types, p)
	s.scoreProximity(a.Coordinates(), p)
	s.scoreDifficulty(a.Types, a.Difficulty, p)
	s.scoreFreshness(a.CreatedAt, now)

	if a.ParticipantCount > 5 {
		s.Score += popularityBonus
		s.reason("Popular activity")
	}

	return s
}

// ScoreEvent computes the weighted relevance of an event for a profile.
// Events share the activity factors and add an availability/timing factor.
func ScoreEvent(e *Event, p *Profile, now time.Time) Scored {
	var s Scored
	if e == nil || p == nil {
		return s
	}

	s.scoreTypeAffinity(e.ActivityTypes, p)
	s.scoreProximity(e.Coordinates(), p)
	s.scoreDifficulty(e.ActivityTypes, e.Difficulty, p)
	s.scoreFreshness(e.CreatedAt, now)
	s.scoreAvailability(e, now)

	return s
}

// scoreTypeAffinity compares candidate type tags against the user's
// disciplines with case-insensitive substring containment in either
// direction. Both sides are free text from different vocabularies, so the
// loose match is deliberate ("ski" matches "skiing" and vice versa).
// Contribution = matched/total * 40.
func (s *Scored) scoreTypeAffinity(types []string, p *Profile) {
	if len(types) == 0 || len(p.Disciplines) == 0 {
		return
	}

	var matched []string
	for _, t := range types {
		tl := strings.ToLower(strings.TrimSpace(t))
		if tl == "" {
			continue
		}
		for _, d := range p.Disciplines {
			dl := strings.ToLower(strings.TrimSpace(d))
			if dl == "" {
				continue
			}
			if strings.Contains(dl, tl) || strings.Contains(tl, dl) {
				matched = append(matched, t)
				break
			}
		}
	}

	if len(matched) == 0 {
		return
	}

	contribution := float64(len(matched)) / float64(len(types)) * typeMatchWeight
	s.Factors.TypeMatch = contribution
	s.Score += contribution
	s.reason("Matches your interest in " + strings.Join(matched, ", "))
}

// scoreProximity awards a linear falloff from 30 at distance zero to 0 at
// the profile's search radius. Outside the radius the factor stays zero,
// which also makes the candidate fail the location admission gate when the
// viewer's location is known.
func (s *Scored) scoreProximity(candidate *Coordinates, p *Profile) {
	user := p.Coordinates()
	if user == nil || candidate == nil {
		return
	}

	maxKm := p.Radius()
	distance := DistanceKm(user.Lat, user.Lng, candidate.Lat, candidate.Lng)
	if distance > maxKm {
		return
	}

	contribution := (1 - distance/maxKm) * locationWeight
	s.Factors.LocationScore = contribution
	s.Score += contribution

	switch {
	case distance <= veryCloseKm:
		s.reason("Very close to you")
	case distance <= nearbyKm:
		s.reason("Near your location")
	default:
		s.reason(fmt.Sprintf("%.1fkm from you", distance))
	}
}

// scoreDifficulty scans the candidate's type tags in their given order and
// stops at the first qualifying comparison against the user's declared
// experience level for that type. Awards never sum across tags.
func (s *Scored) scoreDifficulty(types []string, candidate Difficulty, p *Profile) {
	candidateRank := difficultyRank(candidate)
	if candidateRank < 0 {
		return
	}

	for _, t := range types {
		level, ok := p.ExperienceFor(t)
		if !ok {
			continue
		}
		userRank := difficultyRank(level)
		if userRank < 0 {
			continue
		}

		switch userRank - candidateRank {
		case 0:
			s.Factors.DifficultyMatch = difficultyExactAward
			s.Score += difficultyExactAward
			s.reason("Perfect difficulty match")
			return
		case -1:
			s.Factors.DifficultyMatch = difficultyGrowthAward
			s.Score += difficultyGrowthAward
			s.reason("Growth opportunity")
			return
		case 1:
			s.Factors.DifficultyMatch = difficultyEasierAward
			s.Score += difficultyEasierAward
			return
		}
		// Two levels apart is not a qualifying comparison; keep scanning.
	}
}

// scoreFreshness awards recency of the candidate's upstream creation.
//
//	within 7 days: +5
//	within 30 days: +3
//	older: +0
func (s *Scored) scoreFreshness(createdAt time.Time, now time.Time) {
	if createdAt.IsZero() {
		return
	}

	days := now.Sub(createdAt).Hours() / 24

	switch {
	case days <= 7:
		s.Factors.FreshnessScore = freshnessWeight
		s.Score += freshnessWeight
		s.reason("Recently added")
	case days <= 30:
		s.Factors.FreshnessScore = 3
		s.Score += 3
	}
}

// scoreAvailability awards the event-only timing and capacity bonuses.
// The two are independent: a full event within the window still earns the
// timing bonus.
func (s *Scored) scoreAvailability(e *Event, now time.Time) {
	until := e.Date.Sub(now)
	if until > 0 && until <= timingWindow {
		s.Factors.AvailabilityMatch += timingBonus
		s.Score += timingBonus

		switch {
		case until <= 24*time.Hour:
			s.reason("Happening soon")
		case until <= 48*time.Hour:
			s.reason("This weekend")
		default:
			s.reason("This week")
		}
	}

	if e.HasSpots() {
		s.Factors.AvailabilityMatch += spotsBonus
		s.Score += spotsBonus
		s.reason("Spots available")
	}
}
