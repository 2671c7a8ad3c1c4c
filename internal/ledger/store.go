package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps one Session per user in memory.
//
// The store-level mutex only guards the maps. Callers that read or mutate a
// Session must hold that user's lock (see Lock) for the whole operation.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	locks    map[string]*userLock
	now      func() time.Time
}

// userLock is dropped from the store once no caller holds or waits on it.
type userLock struct {
	mu   sync.Mutex
	refs int
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		locks:    make(map[string]*userLock),
		now:      time.Now,
	}
}

// Lock serializes work for a single user and returns the matching unlock.
func (s *Store) Lock(userID string) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &userLock{}
		s.locks[userID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, userID)
		}
		s.mu.Unlock()
	}
}

// GetOrCreate returns the user's session, creating an empty one if needed.
func (s *Store) GetOrCreate(userID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		return sess
	}
	sess := s.newSession(userID)
	s.sessions[userID] = sess
	return sess
}

// Reset discards any existing session for the user and starts a new one.
func (s *Store) Reset(userID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.newSession(userID)
	s.sessions[userID] = sess
	return sess
}

func (s *Store) Get(userID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

// Len reports the number of sessions held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) newSession(userID string) *Session {
	return &Session{
		UserID:   userID,
		ShiftID:  uuid.NewString(),
		State:    AwaitingShiftStart,
		OpenedAt: s.now(),
	}
}

func (sess *Session) AddSale(item string, unitPrice int64) Sale {
	sale := Sale{Item: item, UnitPrice: unitPrice}
	sess.Sales = append(sess.Sales, sale)
	return sale
}

func (sess *Session) AddExpense(description string, amount int64) Expense {
	e := Expense{Description: description, Amount: amount}
	sess.Expenses = append(sess.Expenses, e)
	return e
}

func (sess *Session) TotalSales() int64 {
	var total int64
	for _, s := range sess.Sales {
		total += s.UnitPrice
	}
	return total
}

func (sess *Session) TotalExpenses() int64 {
	var total int64
	for _, e := range sess.Expenses {
		total += e.Amount
	}
	return total
}

// Snapshot returns a copy that shares no slices with the live session.
func (sess *Session) Snapshot() Session {
	cp := *sess
	cp.Sales = append([]Sale(nil), sess.Sales...)
	cp.Expenses = append([]Expense(nil), sess.Expenses...)
	return cp
}
