package parallel

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	assert.Equal(t, int64(n), counter)
}

func TestFor_EachIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}

	seen := make([]int32, 301)
	For(len(seen), func(i int) {
		atomic.AddInt32(&seen[i], 1)
	}, cfg)

	for i, s := range seen {
		assert.Equal(t, int32(1), s, "index %d", i)
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var order []int
	For(100, func(i int) {
		order = append(order, i)
	}, cfg)

	require.Len(t, order, 100)
	for i, v := range order {
		assert.Equal(t, i, v)
	}
}

func TestFor_SmallChunk(t *testing.T) {
	// Test that small work units fall back to sequential.
	cfg := DefaultConfig()

	var counter int64
	n := cfg.MinChunkSize - 1

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	assert.Equal(t, int64(n), counter)
}

func TestRun(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3}

	var running, peak int32
	var mu sync.Mutex
	done := make([]bool, 20)
	tasks := make([]func(), len(done))
	for i := range tasks {
		tasks[i] = func() {
			cur := atomic.AddInt32(&running, 1)
			mu.Lock()
			peak = max(peak, cur)
			done[i] = true
			mu.Unlock()
			atomic.AddInt32(&running, -1)
		}
	}

	Run(tasks, cfg)

	for i, d := range done {
		assert.True(t, d, "task %d", i)
	}
	assert.LessOrEqual(t, peak, int32(3))
}

func TestRun_Disabled(t *testing.T) {
	var order []int
	tasks := []func(){
		func() { order = append(order, 0) },
		func() { order = append(order, 1) },
		func() { order = append(order, 2) },
	}
	Run(tasks, Config{Enabled: false})
	assert.Equal(t, []int{0, 1, 2}, order)

	Run(nil, DefaultConfig())
}

func TestRunContext_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var counter int64
	tasks := []func(){
		func() { atomic.AddInt64(&counter, 1) },
		func() { atomic.AddInt64(&counter, 1) },
	}

	err := RunContext(ctx, tasks, Config{Enabled: false})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(0), counter)

	err = RunContext(ctx, tasks, Config{Enabled: true, NumWorkers: 2})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(0), counter)
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(j int) {
				atomic.AddInt64(&sum, int64(j))
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		seq := Config{Enabled: false}
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(j int) {
				atomic.AddInt64(&sum, int64(j))
			}, seq)
		}
	})
}
