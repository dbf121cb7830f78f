package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// BreakerStore guards a remote BlobStore with a circuit breaker. While the
// circuit is open every call fails fast with ErrUnavailable.
type BreakerStore struct {
	next BlobStore
	cb   *gobreaker.CircuitBreaker[any]
}

// BreakerSettings tunes when the circuit opens and how long it stays open.
type BreakerSettings struct {
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

// NewBreakerStore wraps next.
func NewBreakerStore(next BlobStore, settings BreakerSettings, logger *zap.Logger) *BreakerStore {
	if settings.ConsecutiveFailures == 0 {
		settings.ConsecutiveFailures = 5
	}
	if settings.OpenTimeout <= 0 {
		settings.OpenTimeout = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    "blob-store",
		Timeout: settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			// a caller giving up or a missing blob says nothing about the backend
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrNotExist)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("blob store circuit changed state",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &BreakerStore{next: next, cb: cb}
}

func (b *BreakerStore) Put(ctx context.Context, data []byte, suggestedName string) (string, error) {
	res, err := b.cb.Execute(func() (any, error) {
		return b.next.Put(ctx, data, suggestedName)
	})
	if err != nil {
		return "", breakerErr(err)
	}
	return res.(string), nil
}

func (b *BreakerStore) Get(ctx context.Context, ref string) ([]byte, error) {
	res, err := b.cb.Execute(func() (any, error) {
		return b.next.Get(ctx, ref)
	})
	if err != nil {
		return nil, breakerErr(err)
	}
	return res.([]byte), nil
}

func (b *BreakerStore) Delete(ctx context.Context, ref string) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.next.Delete(ctx, ref)
	})
	return breakerErr(err)
}

// State exposes the circuit state for health reporting.
func (b *BreakerStore) State() string {
	return b.cb.State().String()
}

func breakerErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
