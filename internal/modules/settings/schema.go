package settings

import "database/sql"

// SettingsSchema is a single-row key/value store for user preferences
const SettingsSchema = `
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// InitSchema ensures the settings table exists
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(SettingsSchema)
	return err
}
