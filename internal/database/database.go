package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"venuebook/internal/repository"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates the schema. On postgres it additionally installs the
// partial exclusion constraint that makes two overlapping approvals for the
// same (venue, date) impossible to commit, whatever the in-process checks
// observed beforehand.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(repository.Models()...); err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}
	if err := db.Exec(`ALTER TABLE booking_requests DROP CONSTRAINT IF EXISTS idx_no_approved_overlap`).Error; err != nil {
		return err
	}
	return db.Exec(`
ALTER TABLE booking_requests
  ADD CONSTRAINT idx_no_approved_overlap
  EXCLUDE USING gist (
    venue_id WITH =,
    event_date WITH =,
    int4range(start_minute, end_minute) WITH &&
  ) WHERE (status = 'approved')
`).Error
}
