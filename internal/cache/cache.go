package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/quantmind-br/locrank/internal/core"
	"github.com/quantmind-br/locrank/internal/db"
	"github.com/rs/zerolog"
)

// Store is the persistence the cache reads from and writes to
type Store interface {
	FindByCacheKey(ctx context.Context, key string) (*db.Analysis, error)
	Create(ctx context.Context, a *db.Analysis) error
}

// CacheManager reuses stored analyses of identical input while they are fresh
type CacheManager struct {
	store   Store
	ttl     time.Duration
	enabled bool
	now     func() time.Time
}

// NewCacheManager creates a CacheManager; a zero ttl never expires entries
func NewCacheManager(store Store, ttl time.Duration, enabled bool) *CacheManager {
	return NewCacheManagerWithClock(store, ttl, enabled, time.Now)
}

// NewCacheManagerWithClock creates a CacheManager with a custom clock
func NewCacheManagerWithClock(store Store, ttl time.Duration, enabled bool, now func() time.Time) *CacheManager {
	return &CacheManager{
		store:   store,
		ttl:     ttl,
		enabled: enabled,
		now:     now,
	}
}

// ContentHash is the hex sha256 of the markup
func ContentHash(markup string) string {
	sum := sha256.Sum256([]byte(markup))
	return hex.EncodeToString(sum[:])
}

// Key identifies an analysis by markup and every option that changes the output
func Key(markup string, opts core.Options) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%t\x00", opts.Framework, opts.IncludeAccessibility)
	h.Write([]byte(markup))
	return hex.EncodeToString(h.Sum(nil))
}

// Lookup returns a fresh stored analysis for key. Store failures are logged and
// reported as a miss.
func (c *CacheManager) Lookup(ctx context.Context, key string, log *zerolog.Logger) (*db.Analysis, bool) {
	if !c.enabled {
		return nil, false
	}

	a, err := c.store.FindByCacheKey(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			log.Warn().Err(err).Msg("cache lookup failed (non-fatal)")
		}
		return nil, false
	}

	if c.ttl > 0 && c.now().Sub(a.CreatedAt) > c.ttl {
		log.Debug().
			Str("analysis_id", a.AnalysisID).
			Time("created_at", a.CreatedAt).
			Msg("cached analysis expired")
		return nil, false
	}

	log.Debug().Str("analysis_id", a.AnalysisID).Msg("cache hit")
	return a, true
}

// Save persists an analysis so later identical requests can reuse it
func (c *CacheManager) Save(ctx context.Context, a *db.Analysis, log *zerolog.Logger) error {
	if err := c.store.Create(ctx, a); err != nil {
		return fmt.Errorf("store analysis: %w", err)
	}
	log.Debug().Str("analysis_id", a.AnalysisID).Msg("analysis stored")
	return nil
}
