package settings

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository persists user preferences in the settings table.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new settings repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "settings").Logger(),
	}
}

// Get returns the stored settings, falling back to the given defaults for
// keys that were never saved.
func (r *Repository) Get(defaults Settings) (Settings, error) {
	current := defaults

	token, err := r.getValue(keyAPIToken)
	if err != nil {
		return current, err
	}
	if token != "" {
		current.APIToken = token
	}

	lang, err := r.getValue(keyLanguage)
	if err != nil {
		return current, err
	}
	if ValidLanguage(lang) {
		current.Language = lang
	}

	return current, nil
}

// Save upserts the given settings.
func (r *Repository) Save(s Settings) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	upsert := `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	for key, value := range map[string]string{
		keyAPIToken: s.APIToken,
		keyLanguage: s.Language,
	} {
		if _, err := tx.Exec(upsert, key, value, now); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}
	return nil
}

func (r *Repository) getValue(key string) (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, nil
}
