package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	store := New[string](time.Hour)

	store.Set(1, "первый")
	store.Set(2, "второй")

	value, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, "первый", value)

	value, ok = store.Get(2)
	require.True(t, ok)
	assert.Equal(t, "второй", value)

	_, ok = store.Get(3)
	assert.False(t, ok)
}

func TestSetOverwrites(t *testing.T) {
	store := New[int](time.Hour)

	store.Set(1, 10)
	store.Set(1, 20)

	value, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, 20, value)
}

func TestDelete(t *testing.T) {
	store := New[string](time.Hour)

	store.Set(1, "значение")
	store.Delete(1)

	_, ok := store.Get(1)
	assert.False(t, ok)

	// Удаление отсутствующей записи безопасно
	store.Delete(42)
}

func TestExpiredEntryNotReturned(t *testing.T) {
	store := New[string](10 * time.Millisecond)

	store.Set(1, "скоропортящееся")
	time.Sleep(30 * time.Millisecond)

	_, ok := store.Get(1)
	assert.False(t, ok)
}

func TestSetRefreshesDeadline(t *testing.T) {
	store := New[string](50 * time.Millisecond)

	store.Set(1, "живое")
	time.Sleep(30 * time.Millisecond)
	store.Set(1, "живое")
	time.Sleep(30 * time.Millisecond)

	_, ok := store.Get(1)
	assert.True(t, ok)
}

func TestCleanupExpired(t *testing.T) {
	store := New[string](10 * time.Millisecond)

	store.Set(1, "старое")
	store.Set(2, "старое")
	time.Sleep(30 * time.Millisecond)
	store.cleanupExpired()

	store.mu.RLock()
	defer store.mu.RUnlock()
	assert.Empty(t, store.entries)
}
