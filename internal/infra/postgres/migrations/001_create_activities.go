package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createActivitiesTable creates the activities table with its indexes.
func createActivitiesTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_activities",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS activities (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					source_id VARCHAR(50) NOT NULL,
					external_id VARCHAR(100) NOT NULL,
					name VARCHAR(500) NOT NULL,
					types TEXT[],
					location VARCHAR(200),
					difficulty VARCHAR(20),
					owner_id VARCHAR(100) NOT NULL,
					participant_count INTEGER DEFAULT 0,

					created_at TIMESTAMP NOT NULL,
					synced_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					-- Unique constraint for upsert
					CONSTRAINT uq_activity_source_external UNIQUE (source_id, external_id)
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_activities_owner_id ON activities(owner_id);",
				"CREATE INDEX IF NOT EXISTS idx_activities_created_at ON activities(created_at DESC);",
				"CREATE INDEX IF NOT EXISTS idx_activities_source_id ON activities(source_id);",
			}
			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS activities;").Error
		},
	}
}
