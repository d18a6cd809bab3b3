package analysis

import (
	"strings"
	"sync"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/mamaar/gmlrename/pkg/types"
)

// CacheConfig is the tuning knobs recognized by both session-scoped
// caches.
type CacheConfig struct {
	MaxSize int
	TTL     time.Duration
	Enabled bool
}

// DefaultSemanticCacheConfig matches the semantic query cache defaults:
// 100 entries per table, 60s TTL.
func DefaultSemanticCacheConfig() CacheConfig {
	return CacheConfig{MaxSize: 100, TTL: 60 * time.Second, Enabled: true}
}

type cacheEntry[V any] struct {
	value     V
	storedAt  time.Time
}

// CacheStats tracks hit/miss/eviction counters for one SemanticQueryCache.
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

// SemanticQueryCache memoizes the four read-heavy semantic analyzer
// queries (existence, occurrences, file symbols, dependents) with
// per-table FIFO eviction by insertion order and TTL-based staleness.
// Wraps a Queries instance so call sites don't need to choose between
// cached and direct access.
type SemanticQueryCache struct {
	queries *Queries
	config  CacheConfig

	mu          sync.Mutex
	existence   *orderedmap.OrderedMap[string, cacheEntry[bool]]
	occurrences *orderedmap.OrderedMap[string, cacheEntry[[]types.Occurrence]]
	fileSymbols *orderedmap.OrderedMap[string, cacheEntry[[]FileSymbol]]
	dependents  *orderedmap.OrderedMap[string, cacheEntry[[]Dependent]]
	stats       CacheStats
}

// NewSemanticQueryCache wraps queries with the given cache configuration.
// A non-positive MaxSize falls back to DefaultSemanticCacheConfig's; a
// non-positive TTL is kept as is and means entries never go stale.
func NewSemanticQueryCache(queries *Queries, config CacheConfig) *SemanticQueryCache {
	if config.MaxSize <= 0 {
		config.MaxSize = DefaultSemanticCacheConfig().MaxSize
	}
	return &SemanticQueryCache{
		queries:     queries,
		config:      config,
		existence:   orderedmap.New[string, cacheEntry[bool]](),
		occurrences: orderedmap.New[string, cacheEntry[[]types.Occurrence]](),
		fileSymbols: orderedmap.New[string, cacheEntry[[]FileSymbol]](),
		dependents:  orderedmap.New[string, cacheEntry[[]Dependent]](),
	}
}

func (c *SemanticQueryCache) fresh(storedAt time.Time) bool {
	if c.config.TTL <= 0 {
		return true
	}
	return time.Since(storedAt) <= c.config.TTL
}

func evictOldest[V any](m *orderedmap.OrderedMap[string, cacheEntry[V]], maxSize int, stats *CacheStats) {
	for m.Len() >= maxSize {
		oldest := m.Oldest()
		if oldest == nil {
			return
		}
		m.Delete(oldest.Key)
		stats.Evictions++
	}
}

// HasSymbol returns (and caches) whether id exists.
func (c *SemanticQueryCache) HasSymbol(id string) bool {
	if !c.config.Enabled {
		return c.queries.HasSymbol(id)
	}

	c.mu.Lock()
	if entry, ok := c.existence.Get(id); ok && c.fresh(entry.storedAt) {
		c.stats.Hits++
		c.mu.Unlock()
		return entry.value
	}
	c.stats.Misses++
	c.mu.Unlock()

	result := c.queries.HasSymbol(id)

	c.mu.Lock()
	evictOldest(c.existence, c.config.MaxSize, &c.stats)
	c.existence.Set(id, cacheEntry[bool]{value: result, storedAt: time.Now()})
	c.mu.Unlock()

	return result
}

// Occurrences returns (and caches) the occurrences of name.
func (c *SemanticQueryCache) Occurrences(name string) ([]types.Occurrence, error) {
	if !c.config.Enabled {
		return c.queries.Occurrences(name)
	}

	c.mu.Lock()
	if entry, ok := c.occurrences.Get(name); ok && c.fresh(entry.storedAt) {
		c.stats.Hits++
		c.mu.Unlock()
		return entry.value, nil
	}
	c.stats.Misses++
	c.mu.Unlock()

	result, err := c.queries.Occurrences(name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	evictOldest(c.occurrences, c.config.MaxSize, &c.stats)
	c.occurrences.Set(name, cacheEntry[[]types.Occurrence]{value: result, storedAt: time.Now()})
	c.mu.Unlock()

	return result, nil
}

// FileSymbols returns (and caches) the symbols defined in path.
func (c *SemanticQueryCache) FileSymbols(path string) ([]FileSymbol, error) {
	if !c.config.Enabled {
		return c.queries.FileSymbols(path)
	}

	c.mu.Lock()
	if entry, ok := c.fileSymbols.Get(path); ok && c.fresh(entry.storedAt) {
		c.stats.Hits++
		c.mu.Unlock()
		return entry.value, nil
	}
	c.stats.Misses++
	c.mu.Unlock()

	result, err := c.queries.FileSymbols(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	evictOldest(c.fileSymbols, c.config.MaxSize, &c.stats)
	c.fileSymbols.Set(path, cacheEntry[[]FileSymbol]{value: result, storedAt: time.Now()})
	c.mu.Unlock()

	return result, nil
}

// Dependents returns (and caches) the dependents of ids. The cache key is
// the ids joined with ",": callers that want cache benefit should query
// with stable, sorted id sets.
func (c *SemanticQueryCache) Dependents(ids []string) ([]Dependent, error) {
	key := strings.Join(ids, ",")
	if !c.config.Enabled {
		return c.queries.Dependents(ids)
	}

	c.mu.Lock()
	if entry, ok := c.dependents.Get(key); ok && c.fresh(entry.storedAt) {
		c.stats.Hits++
		c.mu.Unlock()
		return entry.value, nil
	}
	c.stats.Misses++
	c.mu.Unlock()

	result, err := c.queries.Dependents(ids)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	evictOldest(c.dependents, c.config.MaxSize, &c.stats)
	c.dependents.Set(key, cacheEntry[[]Dependent]{value: result, storedAt: time.Now()})
	c.mu.Unlock()

	return result, nil
}

// Stats returns a snapshot of the cache's hit/miss/eviction counters.
func (c *SemanticQueryCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// InvalidateAll clears every table.
func (c *SemanticQueryCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.existence = orderedmap.New[string, cacheEntry[bool]]()
	c.occurrences = orderedmap.New[string, cacheEntry[[]types.Occurrence]]()
	c.fileSymbols = orderedmap.New[string, cacheEntry[[]FileSymbol]]()
	c.dependents = orderedmap.New[string, cacheEntry[[]Dependent]]()
}

// Lookup delegates straight to the wrapped queries: scope lookups are not
// memoized by this cache, only existence/occurrences/file-symbols/dependents.
func (c *SemanticQueryCache) Lookup(name, scopeID string) (Binding, bool) {
	return c.queries.Lookup(name, scopeID)
}

// GetSymbolAtPosition delegates straight to the wrapped queries, same
// reasoning as Lookup.
func (c *SemanticQueryCache) GetSymbolAtPosition(path string, offset int) (PositionMatch, bool) {
	return c.queries.SymbolAtPosition(path, offset)
}

// GetSymbolOccurrences satisfies OccurrenceTracker via the cached Occurrences.
func (c *SemanticQueryCache) GetSymbolOccurrences(name string) ([]types.Occurrence, error) {
	return c.Occurrences(name)
}

// GetFileSymbols satisfies FileSymbolProvider via the cached FileSymbols.
func (c *SemanticQueryCache) GetFileSymbols(path string) ([]FileSymbol, error) {
	return c.FileSymbols(path)
}

// GetDependents satisfies DependencyAnalyzer via the cached Dependents.
func (c *SemanticQueryCache) GetDependents(ids []string) ([]Dependent, error) {
	return c.Dependents(ids)
}

// Collaborators exposes this cache as a Collaborators set: every capability
// the cache memoizes (existence, occurrences, file symbols, dependents)
// routes through the cache, everything else passes through to whatever the
// wrapped Queries was built from.
func (c *SemanticQueryCache) Collaborators() Collaborators {
	passthrough := c.queries.Collab
	return Collaborators{
		Resolver:     c,
		Occurrences:  c,
		FileSymbols:  c,
		Dependencies: c,
		Keywords:     passthrough.Keywords,
		EditCheck:    passthrough.EditCheck,
		Parser:       passthrough.Parser,
		Transpiler:   passthrough.Transpiler,
		FS:           passthrough.FS,
	}
}

// InvalidateFile drops every entry that could be stale after path changed
// on disk: the path's own file-symbol entry, existence/occurrence entries
// for symbols that file defined, and any dependents entry keyed by a set
// containing one of those symbols.
func (c *SemanticQueryCache) InvalidateFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var symbolsInFile []string
	if entry, ok := c.fileSymbols.Get(path); ok {
		for _, sym := range entry.value {
			symbolsInFile = append(symbolsInFile, sym.ID)
		}
	}
	c.fileSymbols.Delete(path)

	for _, sym := range symbolsInFile {
		c.existence.Delete(sym)
	}

	for pair := c.occurrences.Oldest(); pair != nil; {
		next := pair.Next()
		for _, occ := range pair.Value.value {
			if occ.Path == path {
				c.occurrences.Delete(pair.Key)
				break
			}
		}
		pair = next
	}

	for pair := c.dependents.Oldest(); pair != nil; {
		next := pair.Next()
		if keyMentionsAny(pair.Key, symbolsInFile) {
			c.dependents.Delete(pair.Key)
		}
		pair = next
	}
}

func keyMentionsAny(key string, ids []string) bool {
	if len(ids) == 0 {
		return false
	}
	parts := strings.Split(key, ",")
	for _, p := range parts {
		for _, id := range ids {
			if p == id {
				return true
			}
		}
	}
	return false
}
