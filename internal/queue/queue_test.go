package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrainOrderAndEmpty(t *testing.T) {
	var q Queue[int]
	assert.Empty(t, q.Drain())

	for i := 0; i < 5; i++ {
		q.Push(i)
	}
	assert.Equal(t, 5, q.Len())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, q.Drain())
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Drain())
}

func TestDrainReusesBuffers(t *testing.T) {
	var q Queue[string]
	q.Push("a")
	q.Push("b")
	first := q.Drain()
	require.Equal(t, []string{"a", "b"}, first)

	q.Push("c")
	second := q.Drain()
	assert.Equal(t, []string{"c"}, second)

	q.Push("d")
	assert.Equal(t, []string{"d"}, q.Drain())
}

func TestConcurrentProducersSeenExactlyOnce(t *testing.T) {
	var q Queue[int]
	const producers, perProducer = 8, 1000

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(p*perProducer + i)
			}
		}(p)
	}

	seen := make(map[int]int)
	last := make(map[int]int)
	collect := func() {
		for _, v := range q.Drain() {
			seen[v]++
			p := v / perProducer
			if prev, ok := last[p]; ok {
				require.Greater(t, v, prev, "per-producer order")
			}
			last[p] = v
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		collect()
	}
	collect()

	require.Len(t, seen, producers*perProducer)
	for v, n := range seen {
		require.Equal(t, 1, n, "value %d", v)
	}
}
