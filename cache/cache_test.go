// cache/cache_test.go
package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c := New(time.Hour) // sweep never fires during a test
	t.Cleanup(c.Destroy)
	return c
}

func TestKeyDeterminism(t *testing.T) {
	a := Key("employees", map[string]any{"team_id": 1, "location_id": 2})
	b := Key("employees", map[string]any{"location_id": 2, "team_id": 1})

	assert.Equal(t, "employees:location_id=2&team_id=1", a)
	assert.Equal(t, a, b)
}

func TestKeyDropsNilValuesAndHandlesNoParams(t *testing.T) {
	assert.Equal(t, "employees", Key("employees", nil))
	assert.Equal(t, "employees", Key("employees", map[string]any{}))
	assert.Equal(t, "employees", Key("employees", map[string]any{"team_id": nil}))

	withNil := Key("employees", map[string]any{"team_id": 1, "location_id": nil})
	assert.Equal(t, "employees:team_id=1", withNil)
}

func TestKeySerializesValues(t *testing.T) {
	key := Key("leaves", map[string]any{"status": "pending", "employee_id": 7})
	assert.Equal(t, `leaves:employee_id=7&status="pending"`, key)
}

func TestTTLExpiry(t *testing.T) {
	c := newTestCache(t)

	c.Set("k", "v", 50*time.Millisecond)

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	time.Sleep(60 * time.Millisecond)

	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestReadPathSelfEviction(t *testing.T) {
	c := newTestCache(t)

	c.Set("k", "v", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("k")
	require.False(t, ok)

	// The expired read removed the entry without waiting for the sweep.
	assert.NotContains(t, c.Stats().Keys, "k")
	assert.Equal(t, 0, c.Stats().Size)
}

func TestInvalidate(t *testing.T) {
	c := newTestCache(t)

	c.Set("k", 1, time.Minute)
	assert.True(t, c.Invalidate("k"))
	assert.False(t, c.Invalidate("k"))

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestInvalidatePrefix(t *testing.T) {
	c := newTestCache(t)

	c.Set("employees:1", 1, time.Minute)
	c.Set("employees:2", 2, time.Minute)
	c.Set("teams:1", 3, time.Minute)

	removed := c.InvalidatePrefix("employees")
	assert.Equal(t, 2, removed)

	_, ok := c.Get("teams:1")
	assert.True(t, ok)
	assert.Equal(t, []string{"teams:1"}, c.Stats().Keys)
}

func TestClearAndStats(t *testing.T) {
	c := newTestCache(t)

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	assert.Equal(t, 2, c.Stats().Size)

	c.Clear()
	assert.Equal(t, 0, c.Stats().Size)
	assert.Empty(t, c.Stats().Keys)
}

func TestBackgroundSweep(t *testing.T) {
	c := New(20 * time.Millisecond)
	t.Cleanup(c.Destroy)

	c.Set("short", 1, 10*time.Millisecond)
	c.Set("long", 2, time.Minute)

	time.Sleep(60 * time.Millisecond)

	// The sweep reclaimed the expired entry without any read touching it.
	stats := c.Stats()
	assert.Equal(t, []string{"long"}, stats.Keys)
}

func TestDestroyIsIdempotent(t *testing.T) {
	c := New(time.Hour)
	c.Destroy()
	assert.NotPanics(t, c.Destroy)
}

func TestCachedReadThrough(t *testing.T) {
	c := newTestCache(t)

	calls := 0
	fetch := func() ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	first, err := Cached(c, "employees", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, first)

	second, err := Cached(c, "employees", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestCachedPropagatesFetchFailureUncached(t *testing.T) {
	c := newTestCache(t)

	boom := errors.New("upstream down")
	calls := 0
	fetch := func() (int, error) {
		calls++
		return 0, boom
	}

	_, err := Cached(c, "k", time.Minute, fetch)
	assert.ErrorIs(t, err, boom)

	// The failure was not cached: a second call fetches again.
	_, err = Cached(c, "k", time.Minute, fetch)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, c.Stats().Size)
}

func TestTTLForFallsBackToDefault(t *testing.T) {
	assert.Equal(t, 15*time.Minute, TTLFor("teams"))
	assert.Equal(t, time.Minute, TTLFor("leaves"))
	assert.Equal(t, DefaultTTL, TTLFor("unknown_resource"))
}
