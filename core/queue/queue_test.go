package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWorker_RunsJobsInOrder(t *testing.T) {
	w := NewWorker(zap.NewNop())

	var mu sync.Mutex
	var order []string

	record := func(name string, delay time.Duration) func(context.Context) {
		return func(context.Context) {
			time.Sleep(delay)
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}
	}

	// A is slow, B is fast; B must still finish after A.
	w.Enqueue("A", record("A", 50*time.Millisecond))
	w.Enqueue("B", record("B", 0))
	w.Enqueue("C", record("C", 10*time.Millisecond))

	w.Wait()

	assert.Equal(t, []string{"A", "B", "C"}, order)
	assert.True(t, w.Idle())
	assert.Equal(t, 0, w.Len())
}

func TestWorker_SurvivesPanic(t *testing.T) {
	w := NewWorker(zap.NewNop())

	ran := false
	w.Enqueue("boom", func(context.Context) {
		panic("job failure")
	})
	w.Enqueue("after", func(context.Context) {
		ran = true
	})

	w.Wait()
	assert.True(t, ran)
}

func TestWorker_ReentrantEnqueue(t *testing.T) {
	w := NewWorker(zap.NewNop())

	var order []string
	w.Enqueue("outer", func(context.Context) {
		// Enqueue from inside a running job: must grow the backlog,
		// not start a second drain.
		w.Enqueue("inner", func(context.Context) {
			order = append(order, "inner")
		})
		order = append(order, "outer")
	})

	w.Wait()
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestWorker_SingleConsumer(t *testing.T) {
	w := NewWorker(zap.NewNop())

	var mu sync.Mutex
	running := 0
	maxRunning := 0

	for i := 0; i < 10; i++ {
		w.Enqueue("job", func(context.Context) {
			mu.Lock()
			running++
			if running > maxRunning {
				maxRunning = running
			}
			mu.Unlock()

			time.Sleep(2 * time.Millisecond)

			mu.Lock()
			running--
			mu.Unlock()
		})
	}

	w.Wait()
	assert.Equal(t, 1, maxRunning)
}
