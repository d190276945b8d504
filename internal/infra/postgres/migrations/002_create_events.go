package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createEventsTable creates the events table with its indexes.
func createEventsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "002_create_events",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS events (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					source_id VARCHAR(50) NOT NULL,
					external_id VARCHAR(100) NOT NULL,
					title VARCHAR(500) NOT NULL,
					activity_id VARCHAR(100),
					activity_types TEXT[],
					difficulty VARCHAR(20),

					location VARCHAR(200),
					meetup_point VARCHAR(200),
					latitude DECIMAL(9,6),
					longitude DECIMAL(9,6),

					date TIMESTAMP,
					participants TEXT[],
					max_participants INTEGER DEFAULT 0,
					organizer_id VARCHAR(100) NOT NULL,

					created_at TIMESTAMP NOT NULL,
					synced_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					-- Unique constraint for upsert
					CONSTRAINT uq_event_source_external UNIQUE (source_id, external_id)
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);",
				"CREATE INDEX IF NOT EXISTS idx_events_organizer_id ON events(organizer_id);",
				"CREATE INDEX IF NOT EXISTS idx_events_activity_id ON events(activity_id);",
				"CREATE INDEX IF NOT EXISTS idx_events_participants ON events USING GIN (participants);",
			}
			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS events;").Error
		},
	}
}
