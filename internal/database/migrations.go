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
		// Membership lookups: admin gate, dashboard fallback, listings
		{"members", "idx_members_organization_id", "organization_id"},
		{"members", "idx_members_user_id", "user_id"},

		// Hierarchy traversal for admin listings
		{"companies", "idx_companies_organization_id", "organization_id"},
		{"locations", "idx_locations_company_id", "company_id"},

		// The ingestion pipeline selects active locations
		{"locations", "idx_locations_is_active", "is_active"},

		// Dashboard reads are always scoped by client and ordered by time
		{"dashboard_weather", "idx_dashboard_weather_client_measured", "client_id, measured_at"},
		{"dashboard_reviews", "idx_dashboard_reviews_client_date", "client_id, review_date"},
		{"dashboard_competitors", "idx_dashboard_competitors_client", "client_id"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Scan(&count).Error

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

		fmt.Printf("Created index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}
