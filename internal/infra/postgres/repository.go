package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"activity-feed-service/internal/domain"
)

// Repository implements domain.CandidateRepository using PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListPublicActivities returns the freshest activities up to limit, newest
// first. This is the suggestion candidate pool, so recency wins over size.
func (r *Repository) ListPublicActivities(ctx context.Context, limit int) ([]*domain.Activity, error) {
	var models []ActivityModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing public activities: %w", err)
	}

	return activitiesToDomain(models), nil
}

// ListActivitiesByOwner returns all activities owned by the given user.
func (r *Repository) ListActivitiesByOwner(ctx context.Context, ownerID string) ([]*domain.Activity, error) {
	var models []ActivityModel
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing activities by owner: %w", err)
	}

	return activitiesToDomain(models), nil
}

// GetActivity retrieves a single activity by its internal ID.
// Returns nil without error when not found.
func (r *Repository) GetActivity(ctx context.Context, id string) (*domain.Activity, error) {
	var model ActivityModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting activity by id: %w", err)
	}

	return model.ToDomain(), nil
}

// BulkUpsertActivities inserts or updates activities keyed on
// (source_id, external_id), so repeated syncs never duplicate rows.
func (r *Repository) BulkUpsertActivities(ctx context.Context, activities []*domain.Activity) error {
	if len(activities) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := make([]*ActivityModel, len(activities))
	for i, a := range activities {
		models[i] = ActivityFromDomain(a)
		models[i].SyncedAt = now
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "source_id"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "types", "location", "difficulty",
			"owner_id", "participant_count", "created_at", "synced_at",
		}),
	}).CreateInBatches(models, 100).Error
	if err != nil {
		return fmt.Errorf("bulk upserting activities: %w", err)
	}

	for i, m := range models {
		activities[i].ID = m.ID
		activities[i].SyncedAt = m.SyncedAt
	}

	return nil
}

// ListUpcomingEvents returns events scheduled after the given time, soonest
// first, up to limit. Events without a scheduled date are excluded.
func (r *Repository) ListUpcomingEvents(ctx context.Context, after time.Time, limit int) ([]*domain.Event, error) {
	var models []EventModel
	err := r.db.WithContext(ctx).
		Where("date > ?", after).
		Order("date ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing upcoming events: %w", err)
	}

	return eventsToDomain(models), nil
}

// ListEventsInvolving returns events the user organizes or participates in.
func (r *Repository) ListEventsInvolving(ctx context.Context, userID string) ([]*domain.Event, error) {
	var models []EventModel
	err := r.db.WithContext(ctx).
		Where("organizer_id = ? OR ? = ANY(participants)", userID, userID).
		Order("date ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing events involving user: %w", err)
	}

	return eventsToDomain(models), nil
}

// GetEvent retrieves a single event by its internal ID.
// Returns nil without error when not found.
func (r *Repository) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	var model EventModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting event by id: %w", err)
	}

	return model.ToDomain(), nil
}

// BulkUpsertEvents inserts or updates events keyed on (source_id, external_id).
func (r *Repository) BulkUpsertEvents(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := make([]*EventModel, len(events))
	for i, e := range events {
		models[i] = EventFromDomain(e)
		models[i].SyncedAt = now
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "source_id"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "activity_id", "activity_types", "difficulty",
			"location", "meetup_point", "latitude", "longitude",
			"date", "participants", "max_participants",
			"organizer_id", "created_at", "synced_at",
		}),
	}).CreateInBatches(models, 100).Error
	if err != nil {
		return fmt.Errorf("bulk upserting events: %w", err)
	}

	for i, m := range models {
		events[i].ID = m.ID
		events[i].SyncedAt = m.SyncedAt
	}

	return nil
}

// Counts returns candidate totals overall and per source.
func (r *Repository) Counts(ctx context.Context) (domain.CandidateCounts, error) {
	counts := domain.CandidateCounts{BySource: make(map[string]int64)}

	if err := r.db.WithContext(ctx).Model(&ActivityModel{}).Count(&counts.Activities).Error; err != nil {
		return counts, fmt.Errorf("counting activities: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&EventModel{}).Count(&counts.Events).Error; err != nil {
		return counts, fmt.Errorf("counting events: %w", err)
	}

	type sourceCount struct {
		SourceID string
		Total    int64
	}

	var rows []sourceCount
	err := r.db.WithContext(ctx).Model(&ActivityModel{}).
		Select("source_id, COUNT(*) AS total").
		Group("source_id").
		Scan(&rows).Error
	if err != nil {
		return counts, fmt.Errorf("counting activities by source: %w", err)
	}
	for _, row := range rows {
		counts.BySource[row.SourceID] += row.Total
	}

	rows = rows[:0]
	err = r.db.WithContext(ctx).Model(&EventModel{}).
		Select("source_id, COUNT(*) AS total").
		Group("source_id").
		Scan(&rows).Error
	if err != nil {
		return counts, fmt.Errorf("counting events by source: %w", err)
	}
	for _, row := range rows {
		counts.BySource[row.SourceID] += row.Total
	}

	return counts, nil
}

func activitiesToDomain(models []ActivityModel) []*domain.Activity {
	out := make([]*domain.Activity, len(models))
	for i, m := range models {
		out[i] = m.ToDomain()
	}

	return out
}

func eventsToDomain(models []EventModel) []*domain.Event {
	out := make([]*domain.Event, len(models))
	for i, m := range models {
		out[i] = m.ToDomain()
	}

	return out
}
