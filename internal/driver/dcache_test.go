package driver

import (
	"crypto/sha256"
	"testing"

	"fstrify/internal/diag"
	"fstrify/internal/rewrite"
	"fstrify/internal/source"
)

func openTestCache(t *testing.T) *DiskCache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("fstrify-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	return cache
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache := openTestCache(t)
	key := sha256.Sum256([]byte("msg = '%s' % name\n"))

	sites := []rewrite.Site{
		{
			Span:        source.Span{File: 7, Start: 6, End: 17},
			LitSpan:     source.Span{File: 7, Start: 6, End: 10},
			Line:        1,
			EndLine:     1,
			Replacement: "f'{name}'",
		},
		{
			Span:    source.Span{File: 7, Start: 30, End: 44},
			LitSpan: source.Span{File: 7, Start: 30, End: 34},
			Line:    2,
			EndLine: 2,
			Skip:    diag.RwrSkipVerb,
			Reason:  "conversion type %x",
		},
	}

	if err := cache.Put(key, sitesToPayload("src/main.py", sites)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out ScanPayload
	hit, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatalf("expected cache hit")
	}
	if out.Schema != scanCacheSchemaVersion {
		t.Errorf("schema = %d, want %d", out.Schema, scanCacheSchemaVersion)
	}
	if out.Path != "src/main.py" {
		t.Errorf("path = %q, want %q", out.Path, "src/main.py")
	}
	if len(out.Sites) != 2 {
		t.Fatalf("expected 2 sites, got %d", len(out.Sites))
	}

	// Восстановление привязывает сайты к новому FileID текущего запуска.
	restored := payloadToSites(3, &out)
	if restored[0].Span.File != 3 || restored[0].LitSpan.File != 3 {
		t.Errorf("restored file ID = %d/%d, want 3", restored[0].Span.File, restored[0].LitSpan.File)
	}
	if restored[0].Span.Start != 6 || restored[0].Span.End != 17 {
		t.Errorf("restored span = %d..%d, want 6..17", restored[0].Span.Start, restored[0].Span.End)
	}
	if !restored[0].Convertible() || restored[0].Replacement != "f'{name}'" {
		t.Errorf("restored convertible site mismatch: %+v", restored[0])
	}
	if restored[1].Skip != diag.RwrSkipVerb || restored[1].Reason != "conversion type %x" {
		t.Errorf("restored skip site mismatch: %+v", restored[1])
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache := openTestCache(t)
	key := sha256.Sum256([]byte("never stored"))

	var out ScanPayload
	hit, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Fatalf("expected miss for unknown key")
	}
}

func TestDiskCacheSchemaMismatchIsMiss(t *testing.T) {
	cache := openTestCache(t)
	key := sha256.Sum256([]byte("stale entry"))

	stale := &ScanPayload{Schema: scanCacheSchemaVersion + 1, Path: "old.py"}
	if err := cache.Put(key, stale); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out ScanPayload
	hit, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Fatalf("expected miss for foreign schema version")
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache := openTestCache(t)
	key := sha256.Sum256([]byte("short-lived"))

	if err := cache.Put(key, sitesToPayload("a.py", nil)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}

	var out ScanPayload
	hit, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get after DropAll: %v", err)
	}
	if hit {
		t.Fatalf("expected miss after DropAll")
	}

	// Повторный сброс пустого кеша не ошибка.
	if err := cache.DropAll(); err != nil {
		t.Fatalf("second DropAll: %v", err)
	}
}

func TestDiskCacheNilReceiver(t *testing.T) {
	var cache *DiskCache
	key := sha256.Sum256([]byte("x"))

	if err := cache.Put(key, &ScanPayload{}); err != nil {
		t.Fatalf("nil Put: %v", err)
	}
	var out ScanPayload
	if hit, err := cache.Get(key, &out); hit || err != nil {
		t.Fatalf("nil Get = (%v, %v), want (false, nil)", hit, err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("nil DropAll: %v", err)
	}
}
