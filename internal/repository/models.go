package repository

// Models lists the row models in dependency order for AutoMigrate.
func Models() []any {
	return []any{
		&venueRow{},
		&bookingRow{},
	}
}
