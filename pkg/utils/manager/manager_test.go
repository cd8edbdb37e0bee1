package manager

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAddAndWait(t *testing.T) {
	mgr := New(zap.NewNop())

	var value atomic.Int32
	value.Store(10)

	mgr.Add(context.Background(), "sleeper", func(ctx context.Context) {
		time.Sleep(200 * time.Millisecond)
		value.Store(11)
	})

	mgr.Wait()
	require.Equal(t, int32(11), value.Load(), "manager did not wait for go routine to complete")
}

func TestAddWithContextCancel(t *testing.T) {
	mgr := New(zap.NewNop())

	var value atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	mgr.Add(ctx, "waiter", func(ctx context.Context) {
		<-ctx.Done()
		value.Store(11)
	})

	go cancel()
	mgr.Wait()
	require.Equal(t, int32(11), value.Load(), "manager did not wait for go routine to complete when context is cancelled")
}

func TestAddRecoversPanic(t *testing.T) {
	mgr := New(zap.NewNop())

	mgr.Add(context.Background(), "panicker", func(ctx context.Context) {
		panic("boom")
	})

	require.NoError(t, mgr.WaitWithTimeout(time.Second))
}

func TestAddAndWaitWithTimeout(t *testing.T) {
	mgr := New(zap.NewNop())

	mgr.Add(context.Background(), "slow", func(ctx context.Context) {
		time.Sleep(2 * time.Second)
	})

	err := mgr.WaitWithTimeout(500 * time.Millisecond)
	require.Error(t, err, "manager WaitWithTimeout did not return an error when timeout exceeded")

	mgr = New(zap.NewNop())
	var value atomic.Int32
	mgr.Add(context.Background(), "fast", func(ctx context.Context) {
		time.Sleep(100 * time.Millisecond)
		value.Store(11)
	})

	err = mgr.WaitWithTimeout(time.Second)
	require.NoError(t, err, "manager returned error even though all go routines completed before timeout")
	require.Equal(t, int32(11), value.Load())
}
