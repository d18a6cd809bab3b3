package analysis

import (
	"strings"
	"sync"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/mamaar/gmlrename/pkg/types"
)

// DefaultRenameCacheConfig matches the rename validation cache defaults:
// 50 entries, 30s TTL.
func DefaultRenameCacheConfig() CacheConfig {
	return CacheConfig{MaxSize: 50, TTL: 30 * time.Second, Enabled: true}
}

// RenameValidation is the memoized result of validating one rename
// request: the conflicts DetectConflicts produced for it.
type RenameValidation struct {
	Conflicts []types.Conflict
}

// RenameValidationCache memoizes validateRenameRequest(symbolId, newName)
// results, keyed by "symbolId::newName", with FIFO eviction by oldest
// insertion timestamp and TTL-based staleness.
type RenameValidationCache struct {
	config CacheConfig

	mu      sync.Mutex
	entries *orderedmap.OrderedMap[string, cacheEntry[RenameValidation]]
}

// NewRenameValidationCache builds an empty cache with config. A
// non-positive MaxSize falls back to DefaultRenameCacheConfig.
func NewRenameValidationCache(config CacheConfig) *RenameValidationCache {
	if config.MaxSize <= 0 {
		config.MaxSize = DefaultRenameCacheConfig().MaxSize
	}
	return &RenameValidationCache{
		config:  config,
		entries: orderedmap.New[string, cacheEntry[RenameValidation]](),
	}
}

func renameCacheKey(symbolID, newName string) string {
	return symbolID + "::" + newName
}

// Get returns the cached validation for (symbolID, newName), if present
// and not stale.
func (c *RenameValidationCache) Get(symbolID, newName string) (RenameValidation, bool) {
	if !c.config.Enabled {
		return RenameValidation{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := renameCacheKey(symbolID, newName)
	entry, ok := c.entries.Get(key)
	if !ok {
		return RenameValidation{}, false
	}
	if c.config.TTL > 0 && time.Since(entry.storedAt) > c.config.TTL {
		return RenameValidation{}, false
	}
	return entry.value, true
}

// Put stores the validation result for (symbolID, newName), evicting the
// oldest entry first if the cache is at capacity.
func (c *RenameValidationCache) Put(symbolID, newName string, result RenameValidation) {
	if !c.config.Enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := renameCacheKey(symbolID, newName)
	if _, exists := c.entries.Get(key); !exists {
		for c.entries.Len() >= c.config.MaxSize {
			oldest := c.entries.Oldest()
			if oldest == nil {
				break
			}
			c.entries.Delete(oldest.Key)
		}
	}
	c.entries.Set(key, cacheEntry[RenameValidation]{value: result, storedAt: time.Now()})
}

// Invalidate drops the cached entry for (symbolID, newName), if any.
func (c *RenameValidationCache) Invalidate(symbolID, newName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Delete(renameCacheKey(symbolID, newName))
}

// InvalidateSymbol drops every cached entry whose symbol id starts with
// prefix -- used when a symbol's dependents or occurrences have changed
// and any memoized validation of a rename on it is now suspect.
func (c *RenameValidationCache) InvalidateSymbol(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for pair := c.entries.Oldest(); pair != nil; {
		next := pair.Next()
		symbolID, _, found := strings.Cut(pair.Key, "::")
		if found && strings.HasPrefix(symbolID, prefix) {
			c.entries.Delete(pair.Key)
		}
		pair = next
	}
}

// InvalidateAll clears the cache entirely.
func (c *RenameValidationCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = orderedmap.New[string, cacheEntry[RenameValidation]]()
}
