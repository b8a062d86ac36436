package player

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"dualsub/internal/media"
	"dualsub/internal/track"
	"dualsub/pkg/log"
)

// PositionStore persists playback positions per media id across player
// views. Cue data itself is never persisted.
type PositionStore interface {
	LoadPosition(mediaID string) (float64, bool, error)
	SavePosition(mediaID string, position float64) error
}

// Manager owns the live sessions.
type Manager struct {
	resolver  *track.Resolver
	positions PositionStore

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(resolver *track.Resolver, positions PositionStore) *Manager {
	return &Manager{
		resolver:  resolver,
		positions: positions,
		sessions:  make(map[string]*Session),
	}
}

// Create opens a session for a media item, restoring any saved playback
// position for it.
func (m *Manager) Create(item media.Item) (*Session, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	var start float64
	if m.positions != nil {
		pos, ok, err := m.positions.LoadPosition(item.ID)
		if err != nil {
			log.Error("Failed to load playback position for media %s: %v", item.ID, err)
		} else if ok {
			start = pos
		}
	}

	session := newSession(uuid.NewString(), item, m.resolver, start)

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return session, nil
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	return session, ok
}

// Delete closes a session, persisting its playback position.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	session, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return false
	}
	m.savePosition(session)
	return true
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// PruneIdle drops sessions with no interaction for longer than maxIdle,
// persisting their positions first. Returns how many were removed.
func (m *Manager) PruneIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	var expired []*Session
	for id, session := range m.sessions {
		if session.LastActive().Before(cutoff) {
			expired = append(expired, session)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, session := range expired {
		m.savePosition(session)
	}
	if len(expired) > 0 {
		log.Info("Pruned %d idle player session(s)", len(expired))
	}
	return len(expired)
}

func (m *Manager) savePosition(session *Session) {
	if m.positions == nil {
		return
	}
	mediaID, position := session.Position()
	if err := m.positions.SavePosition(mediaID, position); err != nil {
		log.Error("Failed to save playback position for media %s: %v", mediaID, err)
	}
}
