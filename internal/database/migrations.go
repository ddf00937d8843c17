package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Item indexes for filtering and sorting
		{"items", "idx_items_location_id", "location_id"},
		{"items", "idx_items_added_by_user_id", "added_by_user_id"},
		{"items", "idx_items_expiration_date", "expiration_date"},
		{"items", "idx_items_created_at", "created_at"},

		// Location indexes
		{"locations", "idx_locations_household_id", "household_id"},
		{"locations", "idx_locations_location_type", "location_type"},

		// Household member indexes
		{"household_members", "idx_household_members_household_id", "household_id"},
		{"household_members", "idx_household_members_user_id", "user_id"},

		// Household invite code index
		{"households", "idx_households_invite_code", "invite_code"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
