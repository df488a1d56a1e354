package instruments

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository caches FIGI to display-name lookups so refreshes only hit the
// instruments API for FIGIs never seen before.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new instruments repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "instruments").Logger(),
	}
}

// GetNames returns the cached names for the given FIGIs. FIGIs without a
// cache entry are simply absent from the result.
func (r *Repository) GetNames(figis []string) (map[string]string, error) {
	names := make(map[string]string, len(figis))
	if len(figis) == 0 {
		return names, nil
	}

	stmt, err := r.db.Prepare("SELECT name FROM instrument_names WHERE figi = ?")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare name lookup: %w", err)
	}
	defer stmt.Close()

	for _, figi := range figis {
		var name string
		err := stmt.QueryRow(figi).Scan(&name)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up name for %s: %w", figi, err)
		}
		names[figi] = name
	}

	return names, nil
}

// SaveNames upserts the given FIGI to name entries.
func (r *Repository) SaveNames(names map[string]string) error {
	if len(names) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO instrument_names (figi, name, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(figi) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare name upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for figi, name := range names {
		if _, err := stmt.Exec(figi, name, now); err != nil {
			return fmt.Errorf("failed to save name for %s: %w", figi, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit names: %w", err)
	}

	r.log.Debug().Int("count", len(names)).Msg("Saved instrument names")
	return nil
}
