package submit

import (
	"sync"
	"time"
)

const (
	DefaultLedgerTTL = 2 * time.Minute
	maxLedgerEntries = 1000
)

type ledgerKey struct {
	PlayerID    string
	Round       int
	Fingerprint string
}

type ledgerEntry struct {
	requestID string
	createdAt time.Time
}

// Ledger remembers recently submitted commands so that re-submitting the same
// selection (a retry after a dropped connection, a double click) reuses the
// original request id and the engine can deduplicate it.
type Ledger struct {
	entries map[ledgerKey]ledgerEntry
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
}

// NewLedger creates a ledger whose entries expire after ttl
func NewLedger(ttl time.Duration) *Ledger {
	if ttl <= 0 {
		ttl = DefaultLedgerTTL
	}
	return &Ledger{
		entries: make(map[ledgerKey]ledgerEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Assign returns c with the request id of an identical earlier submission by
// the same player in the same round, or records c when there is none
func (l *Ledger) Assign(c Command) (Command, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := c.ledgerKey()
	now := l.now()
	if entry, ok := l.entries[key]; ok && now.Sub(entry.createdAt) <= l.ttl {
		c.RequestID = entry.requestID
		return c, true
	}

	l.entries[key] = ledgerEntry{requestID: c.RequestID, createdAt: now}
	if len(l.entries) > maxLedgerEntries {
		l.cleanupLocked(now)
	}
	return c, false
}

// Forget drops the entry for c, typically once the engine acknowledged it
func (l *Ledger) Forget(c Command) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, c.ledgerKey())
}

// Reset forgets every submission, typically when the round advances
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.entries)
}

// Len returns the number of remembered submissions, expired ones included
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Cleanup removes expired entries
func (l *Ledger) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cleanupLocked(l.now())
}

func (c Command) ledgerKey() ledgerKey {
	return ledgerKey{PlayerID: c.PlayerID, Round: c.Round, Fingerprint: c.fingerprint()}
}

// cleanupLocked must be called with mu held
func (l *Ledger) cleanupLocked(now time.Time) {
	for key, entry := range l.entries {
		if now.Sub(entry.createdAt) > l.ttl {
			delete(l.entries, key)
		}
	}
}
