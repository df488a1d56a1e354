package instruments

import "database/sql"

// InstrumentsSchema holds the FIGI to display-name cache
const InstrumentsSchema = `
CREATE TABLE IF NOT EXISTS instrument_names (
    figi TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// InitSchema ensures the instrument_names table exists
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(InstrumentsSchema)
	return err
}
