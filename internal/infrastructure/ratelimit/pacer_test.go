package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket(t *testing.T) {
	t.Run("Zero interval never blocks", func(t *testing.T) {
		p := NewTokenBucket(0)
		start := time.Now()
		for i := 0; i < 100; i++ {
			require.NoError(t, p.Wait(context.Background()))
		}
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("Positive interval spaces consecutive calls", func(t *testing.T) {
		p := NewTokenBucket(20 * time.Millisecond)
		require.NoError(t, p.Wait(context.Background()))

		start := time.Now()
		require.NoError(t, p.Wait(context.Background()))
		assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
	})

	t.Run("Cancelled context interrupts the wait", func(t *testing.T) {
		p := NewTokenBucket(time.Hour)
		require.NoError(t, p.Wait(context.Background()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		assert.Error(t, p.Wait(ctx))
	})
}

func TestUnpaced(t *testing.T) {
	t.Run("Returns immediately", func(t *testing.T) {
		assert.NoError(t, Unpaced{}.Wait(context.Background()))
	})

	t.Run("Propagates an already-cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, Unpaced{}.Wait(ctx), context.Canceled)
	})
}
