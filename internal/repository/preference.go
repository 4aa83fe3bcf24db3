package repository

import (
	"context"
	"database/sql"
	"errors"
)

var ErrOwnerRequired = errors.New("preference owner is required")

// ThemeRepository stores the theme preference of each session owner.
type ThemeRepository struct {
	db *sql.DB
}

// NewThemeRepository creates a new ThemeRepository.
func NewThemeRepository(db *sql.DB) *ThemeRepository {
	return &ThemeRepository{db: db}
}

const createThemeTable = `
	CREATE TABLE IF NOT EXISTS theme_preferences (
		owner      VARCHAR(64) NOT NULL PRIMARY KEY,
		dark       BOOLEAN     NOT NULL,
		updated_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

const upsertThemeQuery = `
	INSERT INTO theme_preferences (owner, dark)
	VALUES (?, ?)
	ON DUPLICATE KEY UPDATE dark = VALUES(dark)`

// EnsureSchema creates the preferences table if it does not exist.
func (r *ThemeRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createThemeTable)
	return err
}

// LoadTheme returns the stored preference for owner. found is false when
// nothing has been stored yet.
func (r *ThemeRepository) LoadTheme(ctx context.Context, owner string) (dark bool, found bool, err error) {
	if owner == "" {
		return false, false, ErrOwnerRequired
	}

	query := `SELECT dark FROM theme_preferences WHERE owner = ?`
	err = r.db.QueryRowContext(ctx, query, owner).Scan(&dark)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, false, nil
		}
		return false, false, err
	}

	return dark, true, nil
}

// SaveTheme inserts or replaces the preference for owner.
func (r *ThemeRepository) SaveTheme(ctx context.Context, owner string, dark bool) error {
	if owner == "" {
		return ErrOwnerRequired
	}
	_, err := r.db.ExecContext(ctx, upsertThemeQuery, owner, dark)
	return err
}
