// Package reconcile rebuilds a client's view of the active work session
// from the server, using a local cache only to bridge the first read.
package reconcile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultCacheTTL bounds how long a cached session is trusted for display.
const DefaultCacheTTL = 24 * time.Hour

// CacheEntry is the advisory record of the session a client last saw open.
type CacheEntry struct {
	SessionID string    `json:"sessionId"`
	StartedAt time.Time `json:"startedAt"`
	SavedAt   time.Time `json:"savedAt"`
}

// Cache persists a CacheEntry as a small JSON file.
type Cache struct {
	path string
	ttl  time.Duration
	now  func() time.Time
}

func NewCache(path string) *Cache {
	return &Cache{path: path, ttl: DefaultCacheTTL, now: time.Now}
}

// Path returns the file backing the cache.
func (c *Cache) Path() string {
	return c.path
}

// Load returns the cached entry, or nil when there is none, it is expired,
// or the file is unreadable as JSON. Expired and corrupt files are removed.
func (c *Cache) Load() (*CacheEntry, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session cache: %w", err)
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.SessionID == "" {
		return nil, c.Clear()
	}
	if c.now().Sub(entry.SavedAt) > c.ttl {
		return nil, c.Clear()
	}
	return &entry, nil
}

// Save records sessionID as the open session. The file is replaced
// atomically so a reader never sees a partial write.
func (c *Cache) Save(sessionID string, startedAt time.Time) error {
	entry := CacheEntry{SessionID: sessionID, StartedAt: startedAt.UTC(), SavedAt: c.now().UTC()}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding session cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(c.path), ".session-*.json")
	if err != nil {
		return fmt.Errorf("creating session cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing session cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing session cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("replacing session cache: %w", err)
	}
	return nil
}

// Clear removes the cache file. A missing file is not an error.
func (c *Cache) Clear() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session cache: %w", err)
	}
	return nil
}
