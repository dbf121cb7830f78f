package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBreakerStorePassesThrough(t *testing.T) {
	ctx := context.Background()
	inner := &stubStore{data: map[string][]byte{}}
	store := NewBreakerStore(inner, BreakerSettings{}, zap.NewNop())

	ref, err := store.Put(ctx, pngBytes, "a.png")
	require.NoError(t, err)

	data, err := store.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)

	require.NoError(t, store.Delete(ctx, ref))
	assert.Equal(t, "closed", store.State())
}

func TestBreakerStoreOpensAfterConsecutiveFailures(t *testing.T) {
	ctx := context.Background()
	inner := &stubStore{data: map[string][]byte{}, err: errors.New("connection refused")}
	store := NewBreakerStore(inner, BreakerSettings{ConsecutiveFailures: 2, OpenTimeout: time.Minute}, zap.NewNop())

	for i := 0; i < 2; i++ {
		_, err := store.Get(ctx, "a.png")
		require.Error(t, err)
	}
	assert.Equal(t, "open", store.State())

	calls := inner.gets
	_, err := store.Get(ctx, "a.png")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, calls, inner.gets, "open circuit must not reach the backend")

	_, err = store.Put(ctx, pngBytes, "a.png")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, store.Delete(ctx, "a.png"), ErrUnavailable)
}

func TestBreakerStoreIgnoresCanceledCalls(t *testing.T) {
	inner := &stubStore{data: map[string][]byte{}, err: context.Canceled}
	store := NewBreakerStore(inner, BreakerSettings{ConsecutiveFailures: 1}, zap.NewNop())

	_, err := store.Get(context.Background(), "a.png")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "closed", store.State())
}

func TestBreakerStoreMissingBlobsKeepCircuitClosed(t *testing.T) {
	ctx := context.Background()
	store, dir := newTestLocalStore(t)
	guarded := NewBreakerStore(store, BreakerSettings{ConsecutiveFailures: 2, OpenTimeout: time.Minute}, zap.NewNop())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.png"), nil, 0o644))
	for _, ref := range []string{"stale-1.png", "stale-2.png", "empty.png", "stale-3.png"} {
		_, err := guarded.Get(ctx, ref)
		require.ErrorIs(t, err, ErrNotExist, ref)
	}
	require.ErrorIs(t, guarded.Delete(ctx, "stale-1.png"), ErrNotExist)
	assert.Equal(t, "closed", guarded.State())

	ref, err := guarded.Put(ctx, pngBytes, "fresh.png")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, ref))
}
