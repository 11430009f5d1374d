package matching

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairLocks_SerializesBothOrders(t *testing.T) {
	p := newPairLocks()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		overlap bool
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, b := "a", "b"
			if i%2 == 1 {
				a, b = b, a
			}
			release := p.lock(a, b)
			mu.Lock()
			inside++
			if inside > 1 {
				overlap = true
			}
			mu.Unlock()

			mu.Lock()
			inside--
			mu.Unlock()
			release()
		}(i)
	}
	wg.Wait()

	assert.False(t, overlap)
	assert.Equal(t, 0, p.size())
}

func TestPairLocks_IndependentPairs(t *testing.T) {
	p := newPairLocks()

	releaseAB := p.lock("a", "b")
	releaseCD := p.lock("c", "d") // must not block
	assert.Equal(t, 2, p.size())

	releaseCD()
	releaseAB()
	assert.Equal(t, 0, p.size())
}
