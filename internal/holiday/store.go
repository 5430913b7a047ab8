package holiday

import (
	"bufio"
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Cache files larger than this are rejected before decoding
const maxCacheSize = 10 << 20 // 10 MiB

var (
	// ErrCacheMiss reports that no cache file exists for the requested year
	ErrCacheMiss = errors.New("holiday cache miss")

	// ErrCacheInvalid reports a cache file that exists but cannot be trusted
	ErrCacheInvalid = errors.New("invalid holiday cache")
)

// Store reads and writes per-year holiday maps under a single directory
type Store struct {
	dir    string
	logger *zap.Logger
}

// NewStore creates a Store rooted at dir
func NewStore(dir string, logger *zap.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logger,
	}
}

// Filename returns the cache path for a year. The default provider keeps
// the bare hm-<year> name so files written before provider selection
// existed stay readable.
func (s *Store) Filename(year int, p Provider) string {
	if p.IsDefault() {
		return filepath.Join(s.dir, fmt.Sprintf("hm-%d", year))
	}
	return filepath.Join(s.dir, fmt.Sprintf("hm-%s-%d", p.Slug(), year))
}

// Load reads the holiday map stored at path. A missing file reports
// ErrCacheMiss. Files in the legacy boolean schema are migrated to the
// current schema and rewritten in place.
func (s *Store) Load(path string) (Map, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCacheMiss, path)
		}
		return nil, fmt.Errorf("failed to stat cache file: %w", err)
	}

	if info.Size() > maxCacheSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrCacheInvalid, path, info.Size(), maxCacheSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var hm Map
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&hm); err == nil {
		s.logger.Debug("Loaded holiday cache",
			zap.String("path", path),
			zap.Int("entries", len(hm)))
		return hm, nil
	}

	// Older versions stored a plain day-to-bool map
	var legacy map[Key]bool
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&legacy); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCacheInvalid, path)
	}

	hm = migrateLegacy(legacy)
	if err := s.Save(path, hm); err != nil {
		return nil, fmt.Errorf("failed to rewrite migrated cache: %w", err)
	}

	s.logger.Info("Migrated legacy cache file",
		zap.String("path", path),
		zap.Int("entries", len(hm)))

	return hm, nil
}

// migrateLegacy keeps the marked days and names them after their date,
// since the legacy schema never carried names
func migrateLegacy(legacy map[Key]bool) Map {
	hm := make(Map, len(legacy))
	for key, marked := range legacy {
		if !marked {
			continue
		}
		hm[key] = Custom(fmt.Sprintf("Legacy holiday (%02d/%02d)", key.Day, key.Month))
	}
	return hm
}

// Save writes the holiday map to path, replacing any previous content
func (s *Store) Save(path string, hm Map) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := gob.NewEncoder(w).Encode(hm); err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}

	return nil
}
