package watch

import (
	"log/slog"
	"time"
)

// SemanticCache is the subset of analysis.SemanticQueryCache the
// invalidator depends on. Declared locally so this package doesn't import
// analysis just to accept one concrete type.
type SemanticCache interface {
	InvalidateFile(path string)
}

// CacheInvalidator drops stale semantic-query cache entries in response
// to file-change batches from a Watcher, so a rename planned against a
// file the user has since edited on disk never reuses a cached
// occurrence or dependents list for it.
type CacheInvalidator struct {
	cache  SemanticCache
	logger *slog.Logger
}

// NewCacheInvalidator wraps cache.
func NewCacheInvalidator(cache SemanticCache, logger *slog.Logger) *CacheInvalidator {
	return &CacheInvalidator{cache: cache, logger: logger}
}

// HandleChanges invalidates every changed file's cache entries.
func (inv *CacheInvalidator) HandleChanges(events []ChangeEvent) {
	start := time.Now()

	seen := make(map[string]bool, len(events))
	for _, ev := range events {
		if seen[ev.Path] {
			continue
		}
		seen[ev.Path] = true
		inv.cache.InvalidateFile(ev.Path)
	}

	inv.logger.Info("cache invalidation complete",
		"files", len(seen),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
}
