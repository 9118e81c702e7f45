package middleware

import (
	"context"
	"errors"
	"sync"
	"time"
)

// CircuitBreakerState trạng thái circuit breaker
type CircuitBreakerState int

const (
	StateClosed   CircuitBreakerState = iota // đóng (bình thường)
	StateOpen                                // mở (đang ngắt)
	StateHalfOpen                            // nửa mở (thử khôi phục)
)

// CircuitBreaker ngắt mạch khi downstream lỗi liên tục
type CircuitBreaker struct {
	name          string
	maxFailures   int           // số lần lỗi tối đa
	resetTimeout  time.Duration // thời gian chờ trước khi thử lại
	halfOpenMax   int           // số request tối đa ở trạng thái nửa mở
	failures      int           // số lần lỗi hiện tại
	halfOpenCount int           // đếm request ở trạng thái nửa mở
	state         CircuitBreakerState
	lastFailTime  time.Time
	mu            sync.RWMutex
}

// NewCircuitBreaker tạo circuit breaker
func NewCircuitBreaker(name string, maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		name:         name,
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		halfOpenMax:  3,
		state:        StateClosed,
	}
}

// Call thực thi fn qua circuit breaker
func (cb *CircuitBreaker) Call(ctx context.Context, fn func() error) error {
	cb.mu.Lock()
	state := cb.state

	if state == StateOpen {
		if time.Since(cb.lastFailTime) >= cb.resetTimeout {
			cb.state = StateHalfOpen
			cb.halfOpenCount = 0
			state = StateHalfOpen
		} else {
			cb.mu.Unlock()
			return errors.New("circuit breaker is open")
		}
	}

	if state == StateHalfOpen {
		if cb.halfOpenCount >= cb.halfOpenMax {
			cb.mu.Unlock()
			return errors.New("circuit breaker half-open limit reached")
		}
		cb.halfOpenCount++
	}

	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		cb.lastFailTime = time.Now()

		if cb.state == StateHalfOpen {
			// Lỗi khi đang nửa mở: ngắt lại
			cb.state = StateOpen
			cb.halfOpenCount = 0
		} else if cb.failures >= cb.maxFailures {
			cb.state = StateOpen
		}
	} else {
		if cb.state == StateHalfOpen {
			cb.state = StateClosed
			cb.halfOpenCount = 0
		}
		cb.failures = 0
	}

	return err
}

// GetState trạng thái hiện tại
func (cb *CircuitBreaker) GetState() CircuitBreakerState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}
