package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/errdoctor/internal/diagnosis"
	"github.com/abhisek/errdoctor/internal/profile"
	"github.com/abhisek/errdoctor/internal/store"
)

// DefaultTTL is how long an entry stays valid. Stale diagnoses are worse
// than a fresh AI call, so entries age out.
const DefaultTTL = 30 * 24 * time.Hour

// Config tunes cache behavior.
type Config struct {
	TTL time.Duration
}

// DefaultConfig returns the standard cache settings.
func DefaultConfig() Config {
	return Config{TTL: DefaultTTL}
}

// Cache wraps the persistent cache repository with the engine's caching
// policy: profile gating on reads, poison prevention on writes, and
// degradation to a miss on any storage fault. Cache methods never fail
// the caller.
type Cache struct {
	repo store.CacheRepo
	cfg  Config
	log  *zap.Logger
	now  func() time.Time
}

// New creates a Cache over the given repository.
func New(repo store.CacheRepo, cfg Config, log *zap.Logger) *Cache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &Cache{repo: repo, cfg: cfg, log: log, now: time.Now}
}

// Get returns the cached diagnosis for errorText, or nil on a miss. An
// entry only hits when its stored OS and package manager both equal the
// caller's: a solution tuned for another platform is not an answer. The
// editor does not gate; solutions rarely depend on it. Hits bump the
// entry's counter best-effort.
func (c *Cache) Get(ctx context.Context, errorText string, p profile.Profile) *diagnosis.Diagnosis {
	key := Key(errorText)

	rec, err := c.repo.Get(ctx, key)
	if err != nil {
		c.log.Warn("cache read failed, treating as miss", zap.Error(err))
		return nil
	}
	if rec == nil {
		return nil
	}

	if c.now().After(rec.ExpiresAt) {
		if err := c.repo.Delete(ctx, key); err != nil {
			c.log.Warn("expired cache entry not removed", zap.Error(err))
		}
		return nil
	}

	if rec.OS != string(p.OS) || rec.PM != string(p.PackageManager) {
		c.log.Debug("cache entry profile mismatch",
			zap.String("entry_os", rec.OS), zap.String("caller_os", string(p.OS)),
			zap.String("entry_pm", rec.PM), zap.String("caller_pm", string(p.PackageManager)))
		return nil
	}

	var d diagnosis.Diagnosis
	if err := json.Unmarshal(rec.Diagnosis, &d); err != nil {
		c.log.Warn("cache entry undecodable, treating as miss", zap.Error(err))
		return nil
	}

	if err := c.repo.IncrementHits(ctx, key); err != nil {
		c.log.Warn("cache hit counter not updated", zap.Error(err))
	}

	c.log.Debug("cache hit", zap.String("key", key), zap.String("error_type", d.ErrorType))
	return &d
}

// Put stores a diagnosis for errorText and reports whether it was
// written. Zero-confidence and unknown-source diagnoses are refused:
// caching a failure would replay it for the entry's whole lifetime.
func (c *Cache) Put(ctx context.Context, errorText string, p profile.Profile, d *diagnosis.Diagnosis) bool {
	if d == nil {
		return false
	}
	if d.Confidence == 0 || d.Source == diagnosis.SourceUnknown {
		c.log.Debug("refusing to cache fallback diagnosis",
			zap.String("source", d.Source), zap.Float64("confidence", d.Confidence))
		return false
	}

	payload, err := json.Marshal(d)
	if err != nil {
		c.log.Warn("diagnosis not serializable, not cached", zap.Error(err))
		return false
	}

	now := c.now().UTC()
	rec := &store.CacheRecord{
		Key:       Key(errorText),
		Diagnosis: payload,
		OS:        string(p.OS),
		PM:        string(p.PackageManager),
		CreatedAt: now,
		ExpiresAt: now.Add(c.cfg.TTL),
	}

	if err := c.repo.Put(ctx, rec); err != nil {
		c.log.Warn("cache write failed", zap.Error(err))
		return false
	}
	return true
}

// Purge drops expired entries and reports how many were removed.
func (c *Cache) Purge(ctx context.Context) (int64, error) {
	return c.repo.Purge(ctx, c.now().UTC())
}

// Clear drops every entry and reports how many were removed.
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	return c.repo.Clear(ctx)
}

// Stats reports entry count and accumulated hits.
func (c *Cache) Stats(ctx context.Context) (entries int, hits int, err error) {
	return c.repo.Stats(ctx)
}
