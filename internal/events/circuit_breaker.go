package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"charity-transparency/internal/models"
)

var ErrCircuitBreakerOpen = errors.New("circuit breaker is open")

// BreakerState is the position of a CircuitBreaker
type BreakerState int

const (
	StateClosed BreakerState = iota
	StateOpen
	StateHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

type CircuitBreakerConfig struct {
	MaxFailures     int
	ResetTimeout    time.Duration
	HalfOpenMaxSucc int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxFailures:     5,
		ResetTimeout:    30 * time.Second,
		HalfOpenMaxSucc: 3,
	}
}

// CircuitBreaker stops calls to the broker after MaxFailures consecutive
// failures and lets a trial call through once ResetTimeout has passed.
type CircuitBreaker struct {
	mu                sync.RWMutex
	config            CircuitBreakerConfig
	state             BreakerState
	failures          int
	halfOpenSuccesses int
	lastFailureTime   time.Time
	now               func() time.Time
}

func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	defaults := DefaultCircuitBreakerConfig()
	if config.MaxFailures <= 0 {
		config.MaxFailures = defaults.MaxFailures
	}
	if config.ResetTimeout <= 0 {
		config.ResetTimeout = defaults.ResetTimeout
	}
	if config.HalfOpenMaxSucc <= 0 {
		config.HalfOpenMaxSucc = defaults.HalfOpenMaxSucc
	}

	return &CircuitBreaker{
		config: config,
		state:  StateClosed,
		now:    time.Now,
	}
}

// Allow reports whether a call may go through, moving an expired open
// breaker to half open
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen && cb.now().Sub(cb.lastFailureTime) > cb.config.ResetTimeout {
		cb.state = StateHalfOpen
		cb.halfOpenSuccesses = 0
	}

	return cb.state != StateOpen
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateHalfOpen:
		cb.halfOpenSuccesses++
		if cb.halfOpenSuccesses >= cb.config.HalfOpenMaxSucc {
			cb.state = StateClosed
			cb.failures = 0
			cb.halfOpenSuccesses = 0
		}
	case StateClosed:
		cb.failures = 0
	}
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.lastFailureTime = cb.now()

	switch cb.state {
	case StateHalfOpen:
		cb.state = StateOpen
		cb.halfOpenSuccesses = 0
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.config.MaxFailures {
			cb.state = StateOpen
			cb.halfOpenSuccesses = 0
		}
	}
}

func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

func (cb *CircuitBreaker) Failures() int {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.failures
}

// BreakerPublisher guards a Publisher with a CircuitBreaker. While the
// breaker is open events are dropped with a warning instead of waiting on a
// broker that is known to be down.
type BreakerPublisher struct {
	next    Publisher
	breaker *CircuitBreaker
	logger  *slog.Logger
}

func NewBreakerPublisher(next Publisher, breaker *CircuitBreaker, logger *slog.Logger) *BreakerPublisher {
	return &BreakerPublisher{
		next:    next,
		breaker: breaker,
		logger:  logger,
	}
}

func (p *BreakerPublisher) Publish(ctx context.Context, event *models.DonationEvent) error {
	if !p.breaker.Allow() {
		p.logger.WarnContext(ctx, "event broker circuit open, dropping donation event",
			"donation_id", event.DonationID,
			"event_type", event.Type,
		)
		return ErrCircuitBreakerOpen
	}

	if err := p.next.Publish(ctx, event); err != nil {
		p.breaker.RecordFailure()
		if p.breaker.State() == StateOpen {
			p.logger.ErrorContext(ctx, "event broker circuit opened", "error", err)
		}
		return err
	}

	p.breaker.RecordSuccess()
	return nil
}

func (p *BreakerPublisher) Close() error {
	return p.next.Close()
}
