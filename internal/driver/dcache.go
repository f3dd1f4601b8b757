package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"fstrify/internal/diag"
	"fstrify/internal/rewrite"
	"fstrify/internal/source"
)

// Current schema version - increment when ScanPayload format changes
const scanCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты сканирования по хешу содержимого файла.
// Сайты — чистая функция содержимого, поэтому неизменившиеся файлы
// повторный обход директории не парсит вовсе.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// ScanPayload stores one file's cached scan results.
type ScanPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	// Path the sites were computed for; kept for debugging, not validated:
	// одинаковое содержимое даёт одинаковые сайты независимо от пути.
	Path string

	Sites []SitePayload
}

// SitePayload is one serialized site. Spans are stored as raw offsets;
// the FileID is assigned anew on restore.
type SitePayload struct {
	Start       uint32
	End         uint32
	LitStart    uint32
	LitEnd      uint32
	Line        uint32
	EndLine     uint32
	Replacement string
	Skip        uint16
	Reason      string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "scans".
	return filepath.Join(c.dir, "scans", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key [32]byte, payload *ScanPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename файла уже нет
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A missing
// entry or a schema mismatch is a miss, not an error.
func (c *DiskCache) Get(key [32]byte, out *ScanPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	if out.Schema != scanCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// sitesToPayload converts scanned sites into the serializable form.
func sitesToPayload(path string, sites []rewrite.Site) *ScanPayload {
	payload := &ScanPayload{
		Schema: scanCacheSchemaVersion,
		Path:   path,
		Sites:  make([]SitePayload, len(sites)),
	}
	for i := range sites {
		s := &sites[i]
		payload.Sites[i] = SitePayload{
			Start:       s.Span.Start,
			End:         s.Span.End,
			LitStart:    s.LitSpan.Start,
			LitEnd:      s.LitSpan.End,
			Line:        s.Line,
			EndLine:     s.EndLine,
			Replacement: s.Replacement,
			Skip:        uint16(s.Skip),
			Reason:      s.Reason,
		}
	}
	return payload
}

// payloadToSites restores sites against the file's current ID.
func payloadToSites(fileID source.FileID, payload *ScanPayload) []rewrite.Site {
	if payload == nil {
		return nil
	}
	sites := make([]rewrite.Site, len(payload.Sites))
	for i := range payload.Sites {
		p := &payload.Sites[i]
		sites[i] = rewrite.Site{
			Span:        source.Span{File: fileID, Start: p.Start, End: p.End},
			LitSpan:     source.Span{File: fileID, Start: p.LitStart, End: p.LitEnd},
			Line:        p.Line,
			EndLine:     p.EndLine,
			Replacement: p.Replacement,
			Skip:        diag.Code(p.Skip),
			Reason:      p.Reason,
		}
	}
	return sites
}
