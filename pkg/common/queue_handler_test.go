package common

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueueHandlerBatches(t *testing.T) {
	var mu sync.Mutex
	batches := make([][]int, 0)
	q := NewQueueHandler(func(items []int) {
		mu.Lock()
		batches = append(batches, append([]int{}, items...))
		mu.Unlock()
	}, 2, time.Hour)
	q.Add(1, 2, 3)
	q.Add(4, 5)
	assert.Equal(t, 5, q.Len())
	q.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, batches)
	assert.Equal(t, 0, q.Len())
	q.Close()
}

func TestQueueHandlerTicks(t *testing.T) {
	processed := make(chan []string, 1)
	q := NewQueueHandler(func(items []string) {
		processed <- items
	}, 10, 10*time.Millisecond)
	defer q.Close()
	q.Add("a")
	select {
	case items := <-processed:
		assert.Equal(t, []string{"a"}, items)
	case <-time.After(2 * time.Second):
		t.Fatal("queue was never processed")
	}
}
