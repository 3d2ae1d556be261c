package lock

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWithDelay(t *testing.T) {
	t.Run(`runs code under lock`, func(t *testing.T) {
		called := false
		ok, err := WithDelay(context.Background(), "k1", time.Second, func() error {
			called = true
			require.False(t, TryLock("k1"))
			return nil
		})
		require.True(t, ok)
		require.NoError(t, err)
		require.True(t, called)
		require.True(t, TryLock("k1"))
		Unlock("k1")
	})
	t.Run(`timeout while held`, func(t *testing.T) {
		require.True(t, TryLock("k2"))
		defer Unlock("k2")
		ok, err := WithDelay(context.Background(), "k2", 100*time.Millisecond, func() error {
			t.Fatal("must not run")
			return nil
		})
		require.False(t, ok)
		require.NoError(t, err)
	})
	t.Run(`error passed through`, func(t *testing.T) {
		ok, err := WithDelay(context.Background(), "k3", time.Second, func() error {
			return errors.New("failed")
		})
		require.True(t, ok)
		require.EqualError(t, err, "failed")
		require.True(t, TryLock("k3"))
		Unlock("k3")
	})
}
