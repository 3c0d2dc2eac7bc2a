package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry(t *testing.T) {
	entry := NewEntry("hubermanlab", 42, OriginLive)

	assert.Equal(t, "hubermanlab", entry.Key)
	assert.Equal(t, 42, entry.Value)
	assert.False(t, entry.IsFixture())
	assert.LessOrEqual(t, entry.Age(), time.Second)

	assert.True(t, NewEntry("x", 0, OriginFixture).IsFixture())
}

func TestStore_GetSet(t *testing.T) {
	s := NewStore[string]()

	_, err := s.Get("missing")
	require.ErrorIs(t, err, ErrCacheNotFound)

	entry, err := s.Set("hubermanlab", "payload", OriginLive)
	require.NoError(t, err)
	assert.Equal(t, OriginLive, entry.Origin)

	got, err := s.Get("hubermanlab")
	require.NoError(t, err)
	assert.Equal(t, "payload", got.Value)
	assert.Equal(t, 1, s.Len())
}

func TestStore_FirstWriteWins(t *testing.T) {
	s := NewStore[string]()

	_, err := s.Set("k", "first", OriginFixture)
	require.NoError(t, err)

	entry, err := s.Set("k", "second", OriginLive)
	require.NoError(t, err)
	assert.Equal(t, "first", entry.Value)
	assert.Equal(t, OriginFixture, entry.Origin)
}

func TestStore_InvalidKey(t *testing.T) {
	s := NewStore[int]()

	_, err := s.Get("  ")
	require.ErrorIs(t, err, ErrInvalidCacheKey)

	_, err = s.Set("", 1, OriginLive)
	require.ErrorIs(t, err, ErrInvalidCacheKey)
	assert.Equal(t, 0, s.Len())
}

func TestStore_KeyNormalization(t *testing.T) {
	s := NewStore[int]()
	_, err := s.Set(" peter ", 1, OriginLive)
	require.NoError(t, err)

	_, err = s.Get("peter")
	require.NoError(t, err)
	assert.Equal(t, []string{"peter"}, s.Keys())

	entry, err := s.Set("PeterAttiaMD", 2, OriginLive)
	require.NoError(t, err)
	assert.Equal(t, "peterattiamd", entry.Key)

	got, err := s.Get(" peterattiaMD")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Value)

	again, err := s.Set("PETERATTIAMD", 3, OriginFixture)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Value, "keys differing only in case share one entry")
	assert.Equal(t, 2, s.Len())
}

func TestStore_Concurrent(t *testing.T) {
	s := NewStore[int]()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = s.Set(fmt.Sprintf("user-%d", n%10), n, OriginLive)
			_, _ = s.Get("user-0")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, s.Len())
	assert.Len(t, s.Keys(), 10)
}
