package mirrors

import (
	"os"
	"path/filepath"
	"time"

	"mirrorpick/internal/errors"
)

// DefaultTTL is how long a cached status document is used without refetching.
const DefaultTTL = 24 * time.Hour

// Cache keeps the last downloaded status document on disk.
type Cache struct {
	Path string
	TTL  time.Duration

	now func() time.Time
}

// NewCache returns a cache stored at path.
func NewCache(path string, ttl time.Duration) *Cache {
	return &Cache{Path: path, TTL: ttl, now: time.Now}
}

// DefaultCachePath is $XDG_CACHE_HOME/mirrorpick/status.json or the platform equivalent.
func DefaultCachePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrap(err, "locating cache directory")
	}
	return filepath.Join(dir, "mirrorpick", "status.json"), nil
}

// Read returns the cached document and when it was written.
func (c *Cache) Read() ([]byte, time.Time, error) {
	info, err := os.Stat(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, time.Time{}, errors.NewFileError("no cached status", c.Path, errors.FileNotFound, err)
		}
		return nil, time.Time{}, errors.NewFileError("cannot stat cache", c.Path, errors.CacheFailed, err)
	}
	b, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, time.Time{}, errors.NewFileError("cannot read cache", c.Path, errors.CacheFailed, err)
	}
	return b, info.ModTime(), nil
}

// Fresh reports whether a document written at modTime is still within the TTL.
func (c *Cache) Fresh(modTime time.Time) bool {
	if c.TTL <= 0 {
		return false
	}
	return c.clock().Sub(modTime) < c.TTL
}

// Write replaces the cached document.
func (c *Cache) Write(b []byte) error {
	dir := filepath.Dir(c.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewFileError("cannot create cache directory", dir, errors.CacheFailed, err)
	}
	tmp, err := os.CreateTemp(dir, ".status-*.json")
	if err != nil {
		return errors.NewFileError("cannot create cache file", dir, errors.CacheFailed, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return errors.NewFileError("cannot write cache", tmp.Name(), errors.CacheFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewFileError("cannot write cache", tmp.Name(), errors.CacheFailed, err)
	}
	if err := os.Rename(tmp.Name(), c.Path); err != nil {
		return errors.NewFileError("cannot replace cache", c.Path, errors.CacheFailed, err)
	}
	return nil
}

func (c *Cache) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}
