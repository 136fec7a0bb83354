package session

import (
	"sync"
	"time"
)

// Store хранит временное состояние пользователей с TTL на каждую запись.
// Просроченная запись при чтении считается отсутствующей.
type Store[T any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[int64]entry[T]
}

type entry[T any] struct {
	value    T
	deadline time.Time
}

// New создает новое хранилище сессий и запускает фоновую очистку
func New[T any](ttl time.Duration) *Store[T] {
	s := &Store[T]{
		ttl:     ttl,
		entries: make(map[int64]entry[T]),
	}
	s.startCleanup()
	return s
}

// Get возвращает состояние пользователя, если оно есть и не просрочено
func (s *Store[T]) Get(userID int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[userID]
	if !ok || time.Now().After(e.deadline) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set сохраняет состояние пользователя и продлевает срок его жизни
func (s *Store[T]) Set(userID int64, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[userID] = entry[T]{
		value:    value,
		deadline: time.Now().Add(s.ttl),
	}
}

// Delete удаляет состояние пользователя
func (s *Store[T]) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, userID)
}

func (s *Store[T]) startCleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	go func() {
		for range ticker.C {
			s.cleanupExpired()
		}
	}()
}

func (s *Store[T]) cleanupExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for uid, e := range s.entries {
		if now.After(e.deadline) {
			delete(s.entries, uid)
		}
	}
}
