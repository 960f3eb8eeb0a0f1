package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SavedProfile is the single persisted caller profile.
type SavedProfile struct {
	OS        string
	PM        string
	Editor    string
	UpdatedAt time.Time
}

// ProfileRepo persists the caller's configured profile. There is at most
// one saved profile.
type ProfileRepo interface {
	Save(ctx context.Context, p *SavedProfile) error
	Load(ctx context.Context) (*SavedProfile, error)
}

type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) Save(ctx context.Context, p *SavedProfile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO saved_profile (id, os, pm, editor, updated_at)
		VALUES (1, ?, ?, ?, ?)`,
		p.OS, p.PM, p.Editor, p.UpdatedAt)
	return err
}

// Load returns the saved profile, or nil when none was ever saved.
func (r *profileRepo) Load(ctx context.Context) (*SavedProfile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT os, pm, editor, updated_at FROM saved_profile WHERE id = 1`)

	var p SavedProfile
	err := row.Scan(&p.OS, &p.PM, &p.Editor, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
