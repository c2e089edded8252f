package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hopwise/hopwise/internal/core/domain"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir(), opts...)
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "cache.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_ReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "geo:jfk", []byte(`{"lat":40.6413}`), time.Hour))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err, "migrations must not rerun")
	defer second.Close()

	got, err := second.Get(ctx, "geo:jfk")
	require.NoError(t, err)
	assert.JSONEq(t, `{"lat":40.6413}`, string(got))
}

func TestStore_GetSet(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	require.NoError(t, store.Set(ctx, "k", []byte("one"), time.Minute))
	require.NoError(t, store.Set(ctx, "k", []byte("two"), time.Minute))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)
}

func TestStore_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	store := setupTestStore(t, WithClock(clock.Now))

	require.NoError(t, store.Set(ctx, "ride", []byte("x"), 5*time.Minute))
	clock.Advance(5 * time.Minute)

	_, err := store.Get(ctx, "ride")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", stats.Backend)
	assert.Equal(t, int64(1), stats.Sets)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Expired)
	assert.Equal(t, int64(0), stats.Entries)
}

func TestStore_Purge(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	store := setupTestStore(t, WithClock(clock.Now))

	require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, store.Set(ctx, "b", []byte("2"), time.Hour))
	clock.Advance(time.Minute)

	n, err := store.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Entries)
	assert.Equal(t, int64(1), stats.Expired)
}

func TestStore_HitsCounted(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
	for i := 0; i < 3; i++ {
		_, err := store.Get(ctx, "k")
		require.NoError(t, err)
	}

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Hits)
	assert.InDelta(t, 1.0, stats.HitRate(), 1e-9)
}
