package cache

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cache memoizes stage computations for the lifetime of a pipeline.
type Cache interface {
	// Compute returns the entry for key, running compute exactly once when it is missing.
	// A failing compute leaves no entry behind. Prefer the typed GetOrCompute helper.
	Compute(ctx context.Context, key Key, compute func(ctx context.Context) (any, error)) (any, error)
	// Lookup returns the raw entry for key without computing it.
	Lookup(key Key) (any, bool)
	// Invalidate removes a single entry, protected or not.
	Invalidate(key Key) bool
	// InvalidateInstrument removes every entry of an instrument and returns how many were removed.
	InvalidateInstrument(instrument types.InstrumentKey, includeProtected bool) int
	// InvalidateStage removes every entry of a stage and returns how many were removed.
	InvalidateStage(stage StageName, includeProtected bool) int
	// Reset removes every entry. Protected entries are only removed when includeProtected is set.
	Reset(includeProtected bool)
	// Protect marks a computation so that its entries survive soft resets.
	Protect(stage StageName, computation ComputationName)
	// IsProtected reports whether the key belongs to a protected computation.
	IsProtected(key Key) bool
	// Keys lists the current entries in a stable order.
	Keys() []Key
	// Stats returns counters since creation.
	Stats() Stats
}

// Stats holds cache counters.
type Stats struct {
	Entries      int
	Hits         int64
	Misses       int64
	Computations int64
	Failures     int64
}

// CacheV1 is the default Cache. Entries live in a map guarded by a RWMutex and
// concurrent misses on the same key share one computation.
type CacheV1 struct {
	entries   map[Key]any
	protected map[protectedKey]struct{}
	mu        sync.RWMutex
	group     singleflight.Group
	// generation changes on every invalidation so that a computation started before
	// the invalidation does not write its now stale result.
	generation uint64
	log        *logger.Logger

	hits         atomic.Int64
	misses       atomic.Int64
	computations atomic.Int64
	failures     atomic.Int64
}

// NewCacheV1 creates an empty cache. A nil logger discards diagnostics.
func NewCacheV1(log *logger.Logger) *CacheV1 {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &CacheV1{
		entries:   make(map[Key]any),
		protected: make(map[protectedKey]struct{}),
		log:       log.Named("cache"),
	}
}

// Compute implements Cache.
func (c *CacheV1) Compute(ctx context.Context, key Key, compute func(ctx context.Context) (any, error)) (any, error) {
	if chainContains(ctx, key) {
		return nil, errors.Newf(errors.ErrCodeCyclicComputation,
			"computation %s requested itself: %s", key, formatChain(ctx, key))
	}

	if value, ok := c.Lookup(key); ok {
		c.hits.Add(1)
		return value, nil
	}

	c.misses.Add(1)

	value, err, _ := c.group.Do(key.flightKey(), func() (any, error) {
		// Another caller may have stored the entry between the lookup and the flight.
		if value, ok := c.Lookup(key); ok {
			return value, nil
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c.mu.RLock()
		generation := c.generation
		c.mu.RUnlock()

		c.computations.Add(1)
		c.log.Debug("computing cache entry",
			zap.String("stage", string(key.Stage)),
			zap.String("computation", string(key.Computation)),
			zap.String("instrument", key.Instrument.String()),
		)

		value, err := compute(withKey(ctx, key))
		if err != nil {
			c.failures.Add(1)
			c.log.Debug("cache entry computation failed",
				zap.String("key", key.String()),
				zap.Error(err),
			)

			return nil, err
		}

		c.mu.Lock()
		if c.generation == generation {
			c.entries[key] = value
		}
		c.mu.Unlock()

		return value, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Lookup implements Cache.
func (c *CacheV1) Lookup(key Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.entries[key]

	return value, ok
}

// Invalidate implements Cache.
func (c *CacheV1) Invalidate(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++

	if _, ok := c.entries[key]; !ok {
		return false
	}

	delete(c.entries, key)

	return true
}

// InvalidateInstrument implements Cache.
func (c *CacheV1) InvalidateInstrument(instrument types.InstrumentKey, includeProtected bool) int {
	removed := c.removeWhere(func(key Key) bool {
		return key.Instrument == instrument
	}, includeProtected)

	c.log.Debug("invalidated instrument",
		zap.String("instrument", instrument.String()),
		zap.Int("removed", removed),
		zap.Bool("include_protected", includeProtected),
	)

	return removed
}

// InvalidateStage implements Cache.
func (c *CacheV1) InvalidateStage(stage StageName, includeProtected bool) int {
	return c.removeWhere(func(key Key) bool {
		return key.Stage == stage
	}, includeProtected)
}

// Reset implements Cache.
func (c *CacheV1) Reset(includeProtected bool) {
	removed := c.removeWhere(func(Key) bool { return true }, includeProtected)

	c.log.Debug("reset cache",
		zap.Int("removed", removed),
		zap.Bool("include_protected", includeProtected),
	)
}

func (c *CacheV1) removeWhere(match func(Key) bool, includeProtected bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++

	removed := 0

	for key := range c.entries {
		if !match(key) {
			continue
		}

		if !includeProtected && c.isProtectedLocked(key) {
			continue
		}

		delete(c.entries, key)
		removed++
	}

	return removed
}

// Protect implements Cache.
func (c *CacheV1) Protect(stage StageName, computation ComputationName) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.protected[protectedKey{stage: stage, computation: computation}] = struct{}{}
}

// IsProtected implements Cache.
func (c *CacheV1) IsProtected(key Key) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.isProtectedLocked(key)
}

func (c *CacheV1) isProtectedLocked(key Key) bool {
	_, ok := c.protected[protectedKey{stage: key.Stage, computation: key.Computation}]

	return ok
}

// Keys implements Cache.
func (c *CacheV1) Keys() []Key {
	c.mu.RLock()
	keys := make([]Key, 0, len(c.entries))

	for key := range c.entries {
		keys = append(keys, key)
	}
	c.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})

	return keys
}

// Stats implements Cache.
func (c *CacheV1) Stats() Stats {
	c.mu.RLock()
	entries := len(c.entries)
	c.mu.RUnlock()

	return Stats{
		Entries:      entries,
		Hits:         c.hits.Load(),
		Misses:       c.misses.Load(),
		Computations: c.computations.Load(),
		Failures:     c.failures.Load(),
	}
}
