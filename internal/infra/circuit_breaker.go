package infra

// circuit_breaker.go
// Breaker in front of the SMTP relay. Mail delivery is the one collaborator
// that can stay down for minutes at a time; while it is, document emails
// fast-fail into the DLQ and the requeue cron drains them back after the
// relay recovers.

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// CBState is the breaker position reported by the health endpoint.
type CBState int

const (
	CBClosed   CBState = iota // relay healthy, mail flows
	CBOpen                    // relay down, sends fail fast
	CBHalfOpen                // cooldown elapsed, probing with one send
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// ErrCircuitOpen short-circuits a send while the relay is considered down.
var ErrCircuitOpen = errors.New("smtp relay unavailable: circuit open")

// CBConfig tunes how fast the breaker trips and recovers.
type CBConfig struct {
	MaxFailures   int           // consecutive send failures before tripping
	Cooldown      time.Duration // wait before probing the relay again
	ProbesToClose int           // consecutive probe successes before closing
}

// DefaultCBConfig matches a typical shared SMTP relay: trip after five
// failures, probe once a minute, close after two good sends.
func DefaultCBConfig() CBConfig {
	return CBConfig{
		MaxFailures:   5,
		Cooldown:      time.Minute,
		ProbesToClose: 2,
	}
}

type CircuitBreaker struct {
	cfg CBConfig

	mu        sync.Mutex
	tripped   bool
	openUntil time.Time // cooldown deadline while tripped
	failures  int       // consecutive failures while closed
	successes int       // consecutive probe successes while tripped
	probing   bool      // a half-open probe is in flight
}

func NewCircuitBreaker(cfg CBConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = def.MaxFailures
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = def.Cooldown
	}
	if cfg.ProbesToClose <= 0 {
		cfg.ProbesToClose = def.ProbesToClose
	}
	return &CircuitBreaker{cfg: cfg}
}

// State reports the position, promoting open to half-open once the cooldown
// has elapsed.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state()
}

func (cb *CircuitBreaker) state() CBState {
	if !cb.tripped {
		return CBClosed
	}
	if time.Now().Before(cb.openUntil) {
		return CBOpen
	}
	return CBHalfOpen
}

// Execute runs the send through the breaker. While open it fails immediately
// with ErrCircuitOpen; in half-open a single probe is let through and every
// concurrent send fails fast until the probe settles.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	switch cb.state() {
	case CBOpen:
		cb.mu.Unlock()
		return ErrCircuitOpen
	case CBHalfOpen:
		if cb.probing {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
		cb.probing = true
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.probing = false
	if err != nil {
		cb.onFailure()
		return err
	}
	cb.onSuccess()
	return nil
}

// onFailure and onSuccess run under cb.mu.

func (cb *CircuitBreaker) onFailure() {
	if cb.tripped {
		// Failed probe: restart the cooldown.
		cb.successes = 0
		cb.openUntil = time.Now().Add(cb.cfg.Cooldown)
		return
	}
	cb.failures++
	if cb.failures >= cb.cfg.MaxFailures {
		cb.tripped = true
		cb.successes = 0
		cb.openUntil = time.Now().Add(cb.cfg.Cooldown)
		log.Warn().
			Int("fallos_seguidos", cb.failures).
			Dur("cooldown", cb.cfg.Cooldown).
			Msg("smtp: relay caído, correos directo a la DLQ")
	}
}

func (cb *CircuitBreaker) onSuccess() {
	if !cb.tripped {
		cb.failures = 0
		return
	}
	cb.successes++
	if cb.successes >= cb.cfg.ProbesToClose {
		cb.tripped = false
		cb.failures = 0
		cb.successes = 0
		log.Info().Msg("smtp: relay recuperado, circuito cerrado")
	}
}
