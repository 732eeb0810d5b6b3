// Package cache provides a best-effort file-backed memoization layer for
// per-week payloads. Failures are treated as cache misses and never abort a
// run.
package cache

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

type FileCache struct {
	dir string
}

func NewFileCache(dir string) *FileCache {
	return &FileCache{dir: dir}
}

// Load decodes the cached payload for key into v, reporting whether a usable
// entry existed.
func (c *FileCache) Load(key string, v any) bool {
	if c == nil || c.dir == "" {
		return false
	}
	path := filepath.Join(c.dir, key)
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		slog.Debug("Discarding unreadable cache entry", "path", path, "error", err)
		return false
	}
	return true
}

// Save writes the payload for key, creating parent directories as needed.
func (c *FileCache) Save(key string, v any) {
	if c == nil || c.dir == "" {
		return
	}
	path := filepath.Join(c.dir, key)
	data, err := json.Marshal(v)
	if err != nil {
		slog.Debug("Failed to encode cache entry", "key", key, "error", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		slog.Debug("Failed to create cache directory", "path", path, "error", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		slog.Debug("Failed to write cache entry", "path", path, "error", err)
	}
}
