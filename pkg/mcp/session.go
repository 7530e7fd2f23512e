package mcp

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session represents one client on the HTTP transport. The stdio transport
// is single-peer and uses no session.
type Session struct {
	// ID is the unique session identifier, carried in Mcp-Session-Id.
	ID string

	// ClientInfo is what the client sent at initialize.
	ClientInfo ClientInfo

	// Events is the outbound channel drained by the session's SSE stream.
	Events chan *JSONRPCNotification

	// CreatedAt is when the session was created.
	CreatedAt time.Time

	lastActiveAt time.Time
	mu           sync.RWMutex
}

// NewSession creates a new session with a generated ID.
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:           uuid.NewString(),
		Events:       make(chan *JSONRPCNotification, 16),
		CreatedAt:    now,
		lastActiveAt: now,
	}
}

// Touch updates the last active timestamp.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActiveAt = time.Now()
}

// IsExpired checks if the session has been idle longer than timeout.
func (s *Session) IsExpired(timeout time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.lastActiveAt) > timeout
}

// Notify queues a notification for the session's SSE stream. A session with
// a full or absent stream drops the event rather than blocking dispatch.
func (s *Session) Notify(notif *JSONRPCNotification) {
	select {
	case s.Events <- notif:
	default:
	}
}

// SessionManager tracks live HTTP sessions.
type SessionManager struct {
	sessions    map[string]*Session
	maxSessions int
	timeout     time.Duration
	mu          sync.RWMutex
}

// NewSessionManager creates a session manager.
func NewSessionManager(timeout time.Duration) *SessionManager {
	return &SessionManager{
		sessions:    make(map[string]*Session),
		maxSessions: 100,
		timeout:     timeout,
	}
}

// Create registers a new session.
func (m *SessionManager) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.maxSessions {
		return nil, fmt.Errorf("session limit reached (%d)", m.maxSessions)
	}

	session := NewSession()
	m.sessions[session.ID] = session
	return session, nil
}

// Get returns a session by ID, or nil if unknown or expired.
func (m *SessionManager) Get(id string) *Session {
	m.mu.RLock()
	session := m.sessions[id]
	m.mu.RUnlock()

	if session == nil {
		return nil
	}
	if session.IsExpired(m.timeout) {
		m.Delete(id)
		return nil
	}
	return session
}

// Delete removes a session.
func (m *SessionManager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[id]; ok {
		close(session.Events)
		delete(m.sessions, id)
	}
}

// Broadcast queues a notification on every live session.
func (m *SessionManager) Broadcast(notif *JSONRPCNotification) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, session := range m.sessions {
		session.Notify(notif)
	}
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartCleanupRoutine periodically drops expired sessions until stopCh
// closes.
func (m *SessionManager) StartCleanupRoutine(interval time.Duration, stopCh <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.cleanup()
			case <-stopCh:
				return
			}
		}
	}()
}

func (m *SessionManager) cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, session := range m.sessions {
		if session.IsExpired(m.timeout) {
			close(session.Events)
			delete(m.sessions, id)
		}
	}
}
