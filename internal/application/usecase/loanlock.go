package usecase

import "sync"

// LoanLocks serializes financial mutations per loan ID within this process.
// One instance is shared by every mutating use case so a payment, a reversal
// and a status change on the same loan queue behind each other. The
// database's optimistic version guard catches cross-process races; the keyed
// mutex keeps the common single-instance deployment from burning a version
// conflict on every concurrent mutation.
type LoanLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLoanLocks creates an empty lock table.
func NewLoanLocks() *LoanLocks {
	return &LoanLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given loan and returns its unlock func.
func (l *LoanLocks) Lock(loanID string) func() {
	l.mu.Lock()
	m, ok := l.locks[loanID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[loanID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
