package main

import (
	"log"
	"sort"
	"sync"
	"time"
)

const maxSessions = 100

// SessionIdleTimeout is how long a session may run with nobody attached
// before the janitor closes it
var SessionIdleTimeout = 30 * time.Second

// Session represents a game session that players can join
type Session struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Game      *Game
}

// SessionManager handles creation and lookup of sessions
type SessionManager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	cfg       *Config
	db        *DB
	analytics *Analytics
}

// NewSessionManager creates a new SessionManager. db and analytics may be nil.
func NewSessionManager(cfg *Config, db *DB, analytics *Analytics) *SessionManager {
	return &SessionManager{
		sessions:  make(map[string]*Session),
		cfg:       cfg,
		db:        db,
		analytics: analytics,
	}
}

// CreateSession creates and starts a new game session. Returns nil if the
// limit is reached.
func (sm *SessionManager) CreateSession(name string, seed int64) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.sessions) >= maxSessions {
		return nil
	}

	id := GenerateID(8)
	sess := &Session{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now(),
		Game:      NewGame(sm.cfg, id, seed, sm.db, sm.analytics),
	}
	sm.sessions[id] = sess
	go sess.Game.Run()

	sm.analytics.Track(EvtSessionStart, id, "")
	sm.analytics.SetActiveSessions(len(sm.sessions))
	log.Printf("session %s (%q) created", id, name)
	return sess
}

// GetSession returns a session by ID
func (sm *SessionManager) GetSession(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// RemoveSession stops a session and tells anyone still attached
func (sm *SessionManager) RemoveSession(id string) {
	sm.mu.Lock()
	sess, ok := sm.sessions[id]
	if ok {
		delete(sm.sessions, id)
	}
	n := len(sm.sessions)
	sm.mu.Unlock()
	if !ok {
		return
	}

	sess.Game.Stop()
	sess.Game.broadcastMsg(Envelope{T: MsgEnded, Data: map[string]string{"sid": id}})
	sm.analytics.SetActiveSessions(n)
	log.Printf("session %s closed", id)
}

// Detach removes b from a session. A departing pilot ends the session.
func (sm *SessionManager) Detach(sessionID string, b Broadcaster) {
	sess := sm.GetSession(sessionID)
	if sess == nil {
		return
	}
	if sess.Game.IsPilot(b) {
		sm.RemoveSession(sessionID)
		return
	}
	sess.Game.RemoveWatcher(b)
}

// ListSessions returns info about all active sessions, oldest first
func (sm *SessionManager) ListSessions() []SessionInfo {
	sm.mu.RLock()
	sessions := make([]*Session, 0, len(sm.sessions))
	for _, sess := range sm.sessions {
		sessions = append(sessions, sess)
	}
	sm.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	list := make([]SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		pilot, watchers, score := sess.Game.Info()
		list = append(list, SessionInfo{
			ID:       sess.ID,
			Name:     sess.Name,
			Pilot:    pilot,
			Watchers: watchers,
			Score:    score,
		})
	}
	return list
}

// Count returns the number of active sessions
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// ReapIdle closes sessions that have had nobody attached for longer than
// SessionIdleTimeout. Returns the number closed.
func (sm *SessionManager) ReapIdle(now time.Time) int {
	sm.mu.RLock()
	var idle []string
	for id, sess := range sm.sessions {
		since := sess.Game.IdleSince()
		if !since.IsZero() && now.Sub(since) > SessionIdleTimeout {
			idle = append(idle, id)
		}
	}
	sm.mu.RUnlock()

	for _, id := range idle {
		sm.RemoveSession(id)
	}
	return len(idle)
}

// RunJanitor reaps idle sessions until stop is closed
func (sm *SessionManager) RunJanitor(stop <-chan struct{}) {
	ticker := time.NewTicker(SessionIdleTimeout / 3)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			sm.ReapIdle(now)
		case <-stop:
			return
		}
	}
}

// CloseAll stops every session, recording piloted runs
func (sm *SessionManager) CloseAll() {
	sm.mu.RLock()
	ids := make([]string, 0, len(sm.sessions))
	for id := range sm.sessions {
		ids = append(ids, id)
	}
	sm.mu.RUnlock()
	for _, id := range ids {
		sm.RemoveSession(id)
	}
}
