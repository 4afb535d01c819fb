package mirrors

import (
	"context"
	_ "embed"

	"mirrorpick/internal/errors"
	"mirrorpick/internal/log"
)

//go:embed sample/status.json
var fallbackDocument []byte

// Source says where a loaded status came from.
type Source string

const (
	SourceCache      Source = "cache"
	SourceNetwork    Source = "network"
	SourceStaleCache Source = "stale cache"
	SourceFallback   Source = "fallback"
)

// Fallback returns the status snapshot bundled with the binary.
func Fallback() (Status, error) {
	st, err := DecodeBytes(fallbackDocument)
	if err != nil {
		return Status{}, errors.Wrap(err, "decoding bundled mirror status")
	}
	return st, nil
}

// Loader resolves the mirror status from the cache, the network, or the bundled snapshot.
// A nil Cache skips caching.
type Loader struct {
	Client *Client
	Cache  *Cache
}

// Load prefers a fresh cache, then the network, then a stale cache, and finally the
// bundled snapshot. Failures along the way are logged, not returned, unless nothing at
// all could be loaded.
func (l *Loader) Load(ctx context.Context) (Status, Source, error) {
	var cached []byte
	if l.Cache != nil {
		b, modTime, err := l.Cache.Read()
		switch {
		case err == nil && l.Cache.Fresh(modTime):
			st, decodeErr := DecodeBytes(b)
			if decodeErr == nil {
				return st, SourceCache, nil
			}
			log.LogWithError(decodeErr).Warn("discarding unreadable cache")
		case err == nil:
			cached = b
		case !errors.IsFileNotFound(err):
			log.LogWithError(err).Warn("cannot read mirror cache")
		}
	}

	if l.Client != nil {
		st, body, err := l.Client.Fetch(ctx)
		if err == nil {
			if l.Cache != nil {
				if err := l.Cache.Write(body); err != nil {
					log.LogWithError(err).Warn("cannot update mirror cache")
				}
			}
			return st, SourceNetwork, nil
		}
		log.LogWithError(err).Warn("fetching mirror status failed")
	}

	if cached != nil {
		if st, err := DecodeBytes(cached); err == nil {
			return st, SourceStaleCache, nil
		}
	}

	st, err := Fallback()
	if err != nil {
		return Status{}, "", err
	}
	return st, SourceFallback, nil
}
