package middleware

import (
	"context"
	"sync"
	"time"
)

// RateLimiter interface giới hạn tần suất request
type RateLimiter interface {
	Allow(ctx context.Context) bool
}

// TokenBucket giới hạn theo thuật toán token bucket
type TokenBucket struct {
	capacity   int64      // dung lượng bucket
	tokens     int64      // số token hiện có
	refillRate int64      // số token bù mỗi giây
	lastRefill time.Time  // lần bù gần nhất
	mu         sync.Mutex // khoá
}

// NewTokenBucket tạo token bucket
func NewTokenBucket(capacity, refillRate int64) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Allow kiểm tra request có được phép không
func (tb *TokenBucket) Allow(ctx context.Context) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()

	// Bù token theo thời gian trôi qua
	tokensToAdd := int64(elapsed * float64(tb.refillRate))
	if tokensToAdd > 0 {
		tb.tokens = tb.tokens + tokensToAdd
		if tb.tokens > tb.capacity {
			tb.tokens = tb.capacity
		}
		tb.lastRefill = now
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}

	return false
}

// SlidingWindow giới hạn theo cửa sổ trượt
type SlidingWindow struct {
	requests    []time.Time   // mốc thời gian các request
	window      time.Duration // độ rộng cửa sổ
	maxRequests int           // số request tối đa trong cửa sổ
	mu          sync.Mutex
}

// NewSlidingWindow tạo sliding window limiter
func NewSlidingWindow(window time.Duration, maxRequests int) *SlidingWindow {
	return &SlidingWindow{
		requests:    make([]time.Time, 0),
		window:      window,
		maxRequests: maxRequests,
	}
}

// Allow kiểm tra request có được phép không
func (sw *SlidingWindow) Allow(ctx context.Context) bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-sw.window)

	// Bỏ các request đã rơi ra ngoài cửa sổ
	validRequests := make([]time.Time, 0, len(sw.requests))
	for _, reqTime := range sw.requests {
		if reqTime.After(windowStart) {
			validRequests = append(validRequests, reqTime)
		}
	}
	sw.requests = validRequests

	if len(sw.requests) < sw.maxRequests {
		sw.requests = append(sw.requests, now)
		return true
	}

	return false
}
