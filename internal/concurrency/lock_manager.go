package concurrency

import (
	"strconv"
	"sync"
)

type refLock struct {
	mu   sync.Mutex
	refs int
}

// LockManager hands out one mutex per key. An entry lives only while some
// goroutine holds or waits for it, so the map tracks in-flight keys, not every
// key ever locked.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*refLock)}
}

// Lock acquires the mutex for key and returns its release function.
// The release function must be called exactly once.
func (lm *LockManager) Lock(key string) (unlock func()) {
	lm.mu.Lock()
	l, ok := lm.locks[key]
	if !ok {
		l = &refLock{}
		lm.locks[key] = l
	}
	l.refs++
	lm.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		lm.mu.Lock()
		defer lm.mu.Unlock()
		if l.refs--; l.refs == 0 {
			delete(lm.locks, key)
		}
	}
}

// Len reports how many keys are currently held or waited on
func (lm *LockManager) Len() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.locks)
}

// ParticipantKey namespaces a participant ID
func ParticipantKey(participantID string) string {
	return "participant:" + participantID
}

// ContributionKey namespaces a contribution ID
func ContributionKey(id int64) string {
	return "contribution:" + strconv.FormatInt(id, 10)
}
