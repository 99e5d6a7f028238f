package token

import (
	"sync"
	"time"
)

// RevocationList - чёрный список jti с датой истечения токена
type RevocationList struct {
	mtx     sync.RWMutex
	entries map[string]time.Time
}

func NewRevocationList() *RevocationList {
	return &RevocationList{
		entries: make(map[string]time.Time),
	}
}

func (l *RevocationList) Revoke(jti string, expiry time.Time) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.entries[jti] = expiry
}

func (l *RevocationList) IsRevoked(jti string) bool {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	_, ok := l.entries[jti]
	return ok
}

func (l *RevocationList) PruneExpired(now time.Time) int {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	pruned := 0
	for jti, expiry := range l.entries {
		if expiry.Before(now) {
			delete(l.entries, jti)
			pruned++
		}
	}
	return pruned
}

func (l *RevocationList) Len() int {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	return len(l.entries)
}
