package analysis

import (
	"testing"
	"time"

	"github.com/mamaar/gmlrename/pkg/types"
)

func TestRenameValidationCacheGetPut(t *testing.T) {
	cache := NewRenameValidationCache(DefaultRenameCacheConfig())

	if _, ok := cache.Get("gml/var/hp", "health"); ok {
		t.Fatal("expected miss on empty cache")
	}

	result := RenameValidation{Conflicts: []types.Conflict{{Type: types.Reserved}}}
	cache.Put("gml/var/hp", "health", result)

	got, ok := cache.Get("gml/var/hp", "health")
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if len(got.Conflicts) != 1 {
		t.Errorf("expected 1 conflict, got %d", len(got.Conflicts))
	}
}

func TestRenameValidationCacheTTLExpiry(t *testing.T) {
	cache := NewRenameValidationCache(CacheConfig{MaxSize: 50, TTL: time.Millisecond, Enabled: true})
	cache.Put("gml/var/hp", "health", RenameValidation{})

	time.Sleep(5 * time.Millisecond)

	if _, ok := cache.Get("gml/var/hp", "health"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestRenameValidationCacheFIFOEviction(t *testing.T) {
	cache := NewRenameValidationCache(CacheConfig{MaxSize: 2, TTL: time.Hour, Enabled: true})

	cache.Put("gml/var/a", "x", RenameValidation{})
	cache.Put("gml/var/b", "y", RenameValidation{})
	cache.Put("gml/var/c", "z", RenameValidation{}) // evicts a/x

	if _, ok := cache.Get("gml/var/a", "x"); ok {
		t.Error("expected oldest entry to be evicted")
	}
	if _, ok := cache.Get("gml/var/c", "z"); !ok {
		t.Error("expected newest entry to remain")
	}
}

func TestRenameValidationCacheInvalidateSymbol(t *testing.T) {
	cache := NewRenameValidationCache(DefaultRenameCacheConfig())
	cache.Put("gml/var/obj_enemy::hp", "health", RenameValidation{})
	cache.Put("gml/script/foo", "bar", RenameValidation{})

	cache.InvalidateSymbol("gml/var/obj_enemy")

	if _, ok := cache.Get("gml/var/obj_enemy::hp", "health"); ok {
		t.Error("expected matching-prefix entry to be invalidated")
	}
	if _, ok := cache.Get("gml/script/foo", "bar"); !ok {
		t.Error("expected non-matching entry to survive")
	}
}

func TestRenameValidationCacheInvalidateAll(t *testing.T) {
	cache := NewRenameValidationCache(DefaultRenameCacheConfig())
	cache.Put("gml/var/a", "x", RenameValidation{})
	cache.InvalidateAll()

	if _, ok := cache.Get("gml/var/a", "x"); ok {
		t.Error("expected cache to be empty after InvalidateAll")
	}
}
