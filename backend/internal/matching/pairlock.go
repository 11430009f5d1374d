package matching

import "sync"

// pairLocks hands out one mutex per unordered user pair, so like(A,B) and
// like(B,A) serialize while unrelated pairs proceed in parallel. Entries are
// reference counted and dropped when the last holder releases.
type pairLocks struct {
	mu    sync.Mutex
	locks map[[2]string]*pairLock
}

type pairLock struct {
	mu   sync.Mutex
	refs int
}

func newPairLocks() *pairLocks {
	return &pairLocks{locks: make(map[[2]string]*pairLock)}
}

// lock blocks until the pair is free and returns the release func.
func (p *pairLocks) lock(a, b string) func() {
	key := orderedPair(a, b)

	p.mu.Lock()
	l, ok := p.locks[key]
	if !ok {
		l = &pairLock{}
		p.locks[key] = l
	}
	l.refs++
	p.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		p.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(p.locks, key)
		}
		p.mu.Unlock()
	}
}

func (p *pairLocks) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.locks)
}
