package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// CacheRecord is one persisted cache entry. Diagnosis holds the
// serialized diagnosis JSON; OS and PM record the profile the entry was
// created under.
type CacheRecord struct {
	Key       string
	Diagnosis []byte
	OS        string
	PM        string
	HitCount  int
	CreatedAt time.Time
	ExpiresAt time.Time
}

// CacheRepo provides access to persisted cache entries.
type CacheRepo interface {
	// Get returns the record for key, or nil when absent.
	Get(ctx context.Context, key string) (*CacheRecord, error)

	// Put inserts or replaces the record for rec.Key.
	Put(ctx context.Context, rec *CacheRecord) error

	// IncrementHits bumps the hit counter for key.
	IncrementHits(ctx context.Context, key string) error

	// Delete removes the record for key if present.
	Delete(ctx context.Context, key string) error

	// Purge removes every record expired as of now and reports how many.
	Purge(ctx context.Context, now time.Time) (int64, error)

	// Clear removes all records and reports how many.
	Clear(ctx context.Context) (int64, error)

	// Stats reports entry count and total hits.
	Stats(ctx context.Context) (entries int, hits int, err error)
}

type cacheRepo struct {
	db *sql.DB
}

func (r *cacheRepo) Get(ctx context.Context, key string) (*CacheRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, diagnosis, os, pm, hit_count, created_at, expires_at
		FROM cache_entries WHERE key = ?`, key)

	var rec CacheRecord
	err := row.Scan(&rec.Key, &rec.Diagnosis, &rec.OS, &rec.PM,
		&rec.HitCount, &rec.CreatedAt, &rec.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *cacheRepo) Put(ctx context.Context, rec *CacheRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO cache_entries
			(key, diagnosis, os, pm, hit_count, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Key, rec.Diagnosis, rec.OS, rec.PM,
		rec.HitCount, rec.CreatedAt, rec.ExpiresAt)
	return err
}

func (r *cacheRepo) IncrementHits(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE cache_entries SET hit_count = hit_count + 1 WHERE key = ?`, key)
	return err
}

func (r *cacheRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE key = ?`, key)
	return err
}

func (r *cacheRepo) Purge(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE expires_at < ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *cacheRepo) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cache_entries`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *cacheRepo) Stats(ctx context.Context) (int, int, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(hit_count), 0) FROM cache_entries`)
	var entries, hits int
	if err := row.Scan(&entries, &hits); err != nil {
		return 0, 0, err
	}
	return entries, hits, nil
}
