package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ContestBot_Go/internal/testing/leaktest"
)

func counting(n *atomic.Int32, err error) Job {
	return JobFunc(func(ctx context.Context) error {
		n.Add(1)
		return err
	})
}

func TestPool_RunsEnqueuedJobs(t *testing.T) {
	var executed atomic.Int32
	pool := NewPool(2, 10)
	pool.Start()

	assert.True(t, pool.Enqueue(counting(&executed, nil)))
	assert.True(t, pool.Enqueue(counting(&executed, nil)))

	require.Eventually(t, func() bool { return executed.Load() == 2 }, time.Second, 5*time.Millisecond)
	pool.Stop()
}

func TestPool_TryEnqueueFull(t *testing.T) {
	var executed atomic.Int32
	pool := NewPool(1, 1)
	// Not started: the single slot fills and the next send is refused
	assert.True(t, pool.TryEnqueue(counting(&executed, nil)))
	assert.False(t, pool.TryEnqueue(counting(&executed, nil)))
	pool.Start()
	pool.Stop()
	assert.Equal(t, int32(1), executed.Load())
}

func TestPool_StopDrainsQueue(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	var executed atomic.Int32
	pool := NewPool(1, 5)
	for i := 0; i < 5; i++ {
		pool.TryEnqueue(counting(&executed, errors.New("failing jobs are logged, not fatal")))
	}
	pool.Start()
	pool.Stop()
	pool.Stop()

	assert.Equal(t, int32(5), executed.Load())
	assert.False(t, pool.Enqueue(counting(&executed, nil)), "stopped pool refuses work")
	checker.Check(0)
}

func TestPool_SurvivesPanickingJob(t *testing.T) {
	var executed atomic.Int32
	pool := NewPool(1, 4)
	pool.Start()
	defer pool.Stop()

	pool.Enqueue(JobFunc(func(ctx context.Context) error { panic("sink exploded") }))
	pool.Enqueue(counting(&executed, nil))

	require.Eventually(t, func() bool { return executed.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestPool_WithJobTimeout(t *testing.T) {
	deadline := make(chan time.Duration, 1)
	pool := NewPool(0, 1, WithJobTimeout(50*time.Millisecond), WithJobTimeout(-1))
	pool.Start()
	defer pool.Stop()

	start := time.Now()
	pool.Enqueue(JobFunc(func(ctx context.Context) error {
		d, _ := ctx.Deadline()
		deadline <- d.Sub(start)
		return nil
	}))

	select {
	case d := <-deadline:
		assert.Less(t, d, time.Second, "custom timeout replaces the default")
	case <-time.After(time.Second):
		t.Fatal("job never ran")
	}
}
