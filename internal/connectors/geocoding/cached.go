// Package geocoding provides place-name resolvers: Nominatim for live
// lookups, a static landmark table for offline use, and a decorator that
// caches any of them in the shared cache store.
package geocoding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
	"github.com/hopwise/hopwise/internal/logger"
)

// Ensure Cached implements the interface.
var _ driven.Geocoder = (*Cached)(nil)

// Cached stores successful lookups of an inner geocoder for ttl.
// Failures are never cached and cache errors only cost a lookup.
type Cached struct {
	inner  driven.Geocoder
	cache  driven.CacheStore
	ttl    time.Duration
	source string
}

// NewCached wraps inner. source names the inner geocoder in cache keys.
func NewCached(inner driven.Geocoder, cache driven.CacheStore, ttl time.Duration, source string) *Cached {
	return &Cached{inner: inner, cache: cache, ttl: ttl, source: source}
}

// CacheKey returns the key a lookup of place is stored under. Case and
// surrounding whitespace do not matter.
func CacheKey(source, place string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(place))))
	return "geocoding:" + source + ":" + hex.EncodeToString(sum[:])
}

// Geocode returns the cached point for place or resolves and stores it.
func (c *Cached) Geocode(ctx context.Context, place string) (domain.GeoPoint, error) {
	key := CacheKey(c.source, place)

	if raw, err := c.cache.Get(ctx, key); err == nil {
		var pt domain.GeoPoint
		if err := json.Unmarshal(raw, &pt); err == nil {
			logger.Debug("Geocode cache hit for %q", place)
			return pt, nil
		}
	}

	pt, err := c.inner.Geocode(ctx, place)
	if err != nil {
		return domain.GeoPoint{}, err
	}

	if raw, err := json.Marshal(pt); err == nil {
		if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
			logger.Warn("Could not cache geocode for %q: %v", place, err)
		}
	}
	return pt, nil
}
