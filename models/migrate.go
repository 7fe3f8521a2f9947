package models

import (
	"fmt"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&File{},
		&Site{},
		&Checkpoint{},
		&Agent{},
		&Service{},
		&Visitor{},
		&NonDesirable{},
		&Visit{},
		&Appointment{},
		&Incident{},
		&SOSAlert{},
	)
}

// EnsureInvariantIndexes installs the storage-level uniqueness
// constraints behind the two check-then-act invariants:
//
//   - at most one visit with a NULL end per visitor
//   - at most one active SOS alert per checkpoint
//
// MySQL has no partial indexes, so each constraint is expressed as a
// nullable generated column that carries the owning id only while the
// row is in its active state; unique indexes ignore NULLs, so finished
// visits and resolved alerts never collide. A second concurrent writer
// hits a duplicate-key error instead of silently violating the
// invariant.
func EnsureInvariantIndexes(db *gorm.DB) error {
	type ddl struct {
		table, column, index, columnDDL, indexDDL string
	}

	statements := []ddl{
		{
			table:  "visits",
			column: "active_visitor_id",
			index:  "uniq_visits_active_visitor",
			columnDDL: "ALTER TABLE visits ADD COLUMN active_visitor_id BIGINT UNSIGNED " +
				"GENERATED ALWAYS AS (IF(end_at IS NULL, visitor_id, NULL)) STORED",
			indexDDL: "CREATE UNIQUE INDEX uniq_visits_active_visitor ON visits (active_visitor_id)",
		},
		{
			table:  "sos_alerts",
			column: "active_checkpoint_id",
			index:  "uniq_sos_active_checkpoint",
			columnDDL: "ALTER TABLE sos_alerts ADD COLUMN active_checkpoint_id BIGINT UNSIGNED " +
				"GENERATED ALWAYS AS (IF(is_active, checkpoint_id, NULL)) STORED",
			indexDDL: "CREATE UNIQUE INDEX uniq_sos_active_checkpoint ON sos_alerts (active_checkpoint_id)",
		},
	}

	for _, s := range statements {
		exists, err := columnExists(db, s.table, s.column)
		if err != nil {
			return fmt.Errorf("checking column %s.%s: %w", s.table, s.column, err)
		}
		if !exists {
			if err := db.Exec(s.columnDDL).Error; err != nil {
				return fmt.Errorf("adding column %s.%s: %w", s.table, s.column, err)
			}
		}

		exists, err = indexExists(db, s.table, s.index)
		if err != nil {
			return fmt.Errorf("checking index %s: %w", s.index, err)
		}
		if !exists {
			if err := db.Exec(s.indexDDL).Error; err != nil {
				return fmt.Errorf("creating index %s: %w", s.index, err)
			}
		}
	}
	return nil
}

func columnExists(db *gorm.DB, table, column string) (bool, error) {
	var count int64
	err := db.Raw(
		"SELECT COUNT(*) FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND COLUMN_NAME = ?",
		table, column,
	).Scan(&count).Error
	return count > 0, err
}

func indexExists(db *gorm.DB, table, index string) (bool, error) {
	var count int64
	err := db.Raw(
		"SELECT COUNT(DISTINCT INDEX_NAME) FROM INFORMATION_SCHEMA.STATISTICS WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND INDEX_NAME = ?",
		table, index,
	).Scan(&count).Error
	return count > 0, err
}
