package store

import (
	"context"
	"database/sql"
	"time"
)

// historyLimit caps stored history entries; the oldest are dropped first.
const historyLimit = 50

// HistoryEntry is one past diagnosis kept for the history command.
type HistoryEntry struct {
	ID         string
	ErrorText  string
	ErrorType  string
	Source     string
	Confidence float64
	Diagnosis  []byte
	CreatedAt  time.Time
}

// HistoryRepo records resolved diagnoses, keeping the most recent
// historyLimit entries.
type HistoryRepo interface {
	Append(ctx context.Context, e *HistoryEntry) error
	Recent(ctx context.Context, limit int) ([]HistoryEntry, error)
}

type historyRepo struct {
	db *sql.DB
}

func (r *historyRepo) Append(ctx context.Context, e *HistoryEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO diagnosis_history
			(id, error_text, error_type, source, confidence, diagnosis, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ErrorText, e.ErrorType, e.Source, e.Confidence, e.Diagnosis, e.CreatedAt)
	if err != nil {
		return err
	}

	// Drop everything past the cap, oldest first.
	_, err = r.db.ExecContext(ctx, `
		DELETE FROM diagnosis_history WHERE id NOT IN (
			SELECT id FROM diagnosis_history
			ORDER BY created_at DESC, id LIMIT ?
		)`, historyLimit)
	return err
}

func (r *historyRepo) Recent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 || limit > historyLimit {
		limit = historyLimit
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, error_text, error_type, source, confidence, diagnosis, created_at
		FROM diagnosis_history
		ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.ErrorText, &e.ErrorType, &e.Source,
			&e.Confidence, &e.Diagnosis, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
