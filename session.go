package main

import (
	"errors"
	"sync"
	"time"
)

const maxSessions = 100

var errTooManySessions = errors.New("session limit reached")

// SessionIdleTimeout is how long an empty session lingers before being
// reaped. A variable so tests can shorten it.
var SessionIdleTimeout = 60 * time.Second

// Session represents one hosted game that clients can attach to
type Session struct {
	ID   string
	Name string
	Game *Game
}

// SessionManager handles creation and lookup of sessions
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	cfg      *GameConfig
	levels   *LevelStore
	events   *EventLog
}

// NewSessionManager creates a new SessionManager
func NewSessionManager(cfg *GameConfig, levels *LevelStore, events *EventLog) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		levels:   levels,
		events:   events,
	}
}

// CreateSession starts a new hosted game. Returns nil and an error if the
// session limit is reached or the start level cannot be built.
func (sm *SessionManager) CreateSession(name string) (*Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.sessions) >= maxSessions {
		return nil, errTooManySessions
	}

	id := GenerateUUID()
	game, err := NewGame(sm.cfg, sm.levels, sm.events, id)
	if err != nil {
		return nil, err
	}
	sess := &Session{ID: id, Name: name, Game: game}
	sm.sessions[id] = sess
	if sm.events != nil {
		sm.events.Track(EvtSessionStart, id, sm.cfg.StartLevel, 0)
	}
	go game.Run()
	return sess, nil
}

// GetSession returns a session by ID, or nil
func (sm *SessionManager) GetSession(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// DetachClient removes a client from a session and schedules the session
// for reaping once it has been empty for SessionIdleTimeout.
func (sm *SessionManager) DetachClient(sessionID, clientID string) {
	sm.mu.RLock()
	sess, ok := sm.sessions[sessionID]
	sm.mu.RUnlock()
	if !ok {
		return
	}
	sess.Game.RemoveClient(clientID)

	if sess.Game.ClientCount() == 0 {
		time.AfterFunc(SessionIdleTimeout, func() {
			sm.reapIfEmpty(sessionID)
		})
	}
}

func (sm *SessionManager) reapIfEmpty(sessionID string) {
	sm.mu.Lock()
	sess, ok := sm.sessions[sessionID]
	if !ok || sess.Game.ClientCount() > 0 {
		sm.mu.Unlock()
		return
	}
	delete(sm.sessions, sessionID)
	sm.mu.Unlock()

	sess.Game.Stop()
	if sm.events != nil {
		sm.events.Track(EvtSessionEnd, sessionID, sess.Game.CurrentLevel(), sess.Game.Player().Score)
	}
}

// ListSessions returns info about all active sessions
func (sm *SessionManager) ListSessions() []SessionInfo {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	list := make([]SessionInfo, 0, len(sm.sessions))
	for _, sess := range sm.sessions {
		list = append(list, SessionInfo{
			ID:      sess.ID,
			Name:    sess.Name,
			Level:   sess.Game.CurrentLevel(),
			Players: sess.Game.ClientCount(),
		})
	}
	return list
}

// SessionCount returns the number of active sessions
func (sm *SessionManager) SessionCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
