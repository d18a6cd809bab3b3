package analysis

import (
	"testing"
	"time"

	"github.com/mamaar/gmlrename/pkg/types"
)

type countingResolver struct {
	calls int
	exist bool
}

func (c *countingResolver) HasSymbol(id string) bool {
	c.calls++
	return c.exist
}

func (c *countingResolver) Lookup(name, scopeID string) (Binding, bool) { return Binding{}, false }

func (c *countingResolver) GetSymbolAtPosition(path string, offset int) (PositionMatch, bool) {
	return PositionMatch{}, false
}

func TestSemanticQueryCacheHitsAvoidRefetch(t *testing.T) {
	resolver := &countingResolver{exist: true}
	q := NewQueries(Collaborators{Resolver: resolver})
	cache := NewSemanticQueryCache(q, DefaultSemanticCacheConfig())

	cache.HasSymbol("gml/script/a")
	cache.HasSymbol("gml/script/a")
	cache.HasSymbol("gml/script/a")

	if resolver.calls != 1 {
		t.Errorf("expected exactly 1 underlying call, got %d", resolver.calls)
	}

	stats := cache.Stats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("expected 2 hits / 1 miss, got hits=%d misses=%d", stats.Hits, stats.Misses)
	}
}

func TestSemanticQueryCacheTTLExpiry(t *testing.T) {
	resolver := &countingResolver{exist: true}
	q := NewQueries(Collaborators{Resolver: resolver})
	cache := NewSemanticQueryCache(q, CacheConfig{MaxSize: 100, TTL: time.Millisecond, Enabled: true})

	cache.HasSymbol("gml/script/a")
	time.Sleep(5 * time.Millisecond)
	cache.HasSymbol("gml/script/a")

	if resolver.calls != 2 {
		t.Errorf("expected refetch after TTL expiry, got %d calls", resolver.calls)
	}
}

func TestSemanticQueryCacheFIFOEviction(t *testing.T) {
	resolver := &countingResolver{exist: true}
	q := NewQueries(Collaborators{Resolver: resolver})
	cache := NewSemanticQueryCache(q, CacheConfig{MaxSize: 2, TTL: time.Hour, Enabled: true})

	cache.HasSymbol("gml/script/a")
	cache.HasSymbol("gml/script/b")
	cache.HasSymbol("gml/script/c") // evicts a

	resolver.calls = 0
	cache.HasSymbol("gml/script/a")
	if resolver.calls != 1 {
		t.Error("expected gml/script/a to have been evicted and refetched")
	}

	stats := cache.Stats()
	if stats.Evictions == 0 {
		t.Error("expected at least one eviction recorded")
	}
}

func TestSemanticQueryCacheInvalidateFile(t *testing.T) {
	q := NewQueries(Collaborators{
		FileSymbols: fakeFileSymbolProvider{"a.gml": {{ID: "gml/script/a"}}},
		Occurrences: &fakeOccurrences{byName: map[string][]types.Occurrence{
			"a": {{Path: "a.gml", Start: 0, End: 1}},
		}},
	})
	cache := NewSemanticQueryCache(q, DefaultSemanticCacheConfig())

	cache.FileSymbols("a.gml")
	cache.Occurrences("a")

	cache.InvalidateFile("a.gml")

	if _, ok := cache.fileSymbols.Get("a.gml"); ok {
		t.Error("expected file symbols entry to be invalidated")
	}
	if _, ok := cache.occurrences.Get("a"); ok {
		t.Error("expected occurrences entry to be invalidated")
	}
}

type fakeFileSymbolProvider map[string][]FileSymbol

func (f fakeFileSymbolProvider) GetFileSymbols(path string) ([]FileSymbol, error) {
	return f[path], nil
}
