package service

import "sync"

// creatorLocks serializes score generation per creator so two concurrent
// triggers cannot both work through the same missing-months set. The store's
// unique (creator, month) constraint is the hard backstop; this keeps the
// common path free of conflict churn.
//
// Mutexes are kept for the life of the process; creator cardinality is low
// enough that no eviction is needed.
type creatorLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newCreatorLocks() *creatorLocks {
	return &creatorLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire blocks until the creator's lock is held and returns the unlock
// function.
func (c *creatorLocks) acquire(creatorID string) func() {
	c.mu.Lock()
	l, ok := c.locks[creatorID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[creatorID] = l
	}
	c.mu.Unlock()

	l.Lock()
	return l.Unlock
}
