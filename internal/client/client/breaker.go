package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/dmitrijs2005/taskboard/internal/logging"
)

// ErrCircuitOpen is returned while the breaker rejects requests.
var ErrCircuitOpen = gobreaker.ErrOpenState

// BreakerConfig holds configuration for the circuit breaker.
type BreakerConfig struct {
	// Name identifies this breaker in metrics and logs.
	Name string

	// MaxRequests allowed in the half-open state. 0 means 1.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state for clearing counts.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// FailureRatio of failed to total requests that trips the breaker.
	FailureRatio float64

	// MinRequests before the ratio is evaluated.
	MinRequests uint32
}

func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:         name,
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

// serverFault marks a 5xx response as a breaker failure while still handing
// the response back to the caller.
type serverFault struct{ status int }

func (e *serverFault) Error() string { return fmt.Sprintf("server error %d", e.status) }

// BreakerTransport guards a Doer with a circuit breaker. Transport errors
// and 5xx responses count as failures; the 5xx response itself is passed
// through untouched so the dispatcher can still report its message.
type BreakerTransport struct {
	next    Doer
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

func NewBreakerTransport(next Doer, cfg BreakerConfig, log logging.Logger, m *Metrics) *BreakerTransport {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn(context.Background(), "circuit breaker state change",
				"breaker", name, "from", from.String(), "to", to.String())
			m.setBreakerState(name, to)
		},
	}
	m.setBreakerState(cfg.Name, gobreaker.StateClosed)

	return &BreakerTransport{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[*http.Response](settings),
	}
}

func (b *BreakerTransport) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := b.breaker.Execute(func() (*http.Response, error) {
		resp, err := b.next.Do(ctx, req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			return resp, &serverFault{status: resp.StatusCode}
		}
		return resp, nil
	})
	var fault *serverFault
	if errors.As(err, &fault) {
		return resp, nil
	}
	return resp, err
}

// State returns the current breaker state.
func (b *BreakerTransport) State() gobreaker.State {
	return b.breaker.State()
}
