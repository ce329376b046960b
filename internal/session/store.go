package session

import (
	"sync"

	"studyquiz/internal/domain"
)

// Store holds live quiz sessions in memory, keyed by session id.
// Sessions do not survive a process restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*QuizSession
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*QuizSession)}
}

// Create builds a new session for quiz and registers it.
func (st *Store) Create(quiz domain.Quiz) *QuizSession {
	s := New(quiz)
	st.mu.Lock()
	st.sessions[s.ID()] = s
	st.mu.Unlock()
	return s
}

// Get returns the session with the given id, or a SESSION_NOT_FOUND
// error.
func (st *Store) Get(id string) (*QuizSession, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, domain.NewSessionNotFoundError(id)
	}
	return s, nil
}

// Delete discards the session with the given id. Deleting an unknown id
// is not an error.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
