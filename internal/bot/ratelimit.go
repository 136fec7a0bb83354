package bot

import (
	"sync"
	"time"
)

// RateLimiter ограничивает число сообщений пользователя в окне времени
type RateLimiter struct {
	requests map[int64][]time.Time
	mutex    sync.Mutex
	limit    int
	window   time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[int64][]time.Time),
		limit:    limit,
		window:   window,
	}
}

func (rl *RateLimiter) IsAllowed(userID int64) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()

	if requests, exists := rl.requests[userID]; exists {
		var valid []time.Time
		for _, t := range requests {
			if now.Sub(t) < rl.window {
				valid = append(valid, t)
			}
		}
		rl.requests[userID] = valid
	}

	if len(rl.requests[userID]) >= rl.limit {
		return false
	}

	rl.requests[userID] = append(rl.requests[userID], now)
	return true
}
