package game

import (
	"path/filepath"
	"regexp"
	"sync"

	"github.com/deadloct/rps-championship-bot/stats"
	log "github.com/sirupsen/logrus"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

type ManagerConfig struct {
	StatsDir  string
	NewPicker func() Picker
	NewStore  func(path string) stats.Store
}

// Manager holds one Session per player, created on first use.
type Manager struct {
	ManagerConfig

	sessions map[string]*Session // maps player ID to their session
	sync.Mutex
}

func NewManager(cfg ManagerConfig) *Manager {
	if cfg.NewPicker == nil {
		cfg.NewPicker = func() Picker { return RandomPicker{} }
	}

	if cfg.NewStore == nil {
		cfg.NewStore = func(path string) stats.Store { return stats.NewFileStore(path) }
	}

	return &Manager{
		ManagerConfig: cfg,
		sessions:      make(map[string]*Session),
	}
}

func (m *Manager) Session(playerID, name string) *Session {
	m.Lock()
	defer m.Unlock()

	if s, exists := m.sessions[playerID]; exists {
		return s
	}

	path := m.StatsPath(playerID)
	log.Infof("opening session for %v with stats at %v", name, path)
	s := NewSession(SessionConfig{
		Name:   name,
		Picker: m.NewPicker(),
		Store:  m.NewStore(path),
	})

	m.sessions[playerID] = s
	return s
}

// EndMatch abandons the player's current match, if they have a session.
func (m *Manager) EndMatch(playerID string) {
	m.Lock()
	s, exists := m.sessions[playerID]
	m.Unlock()

	if exists {
		log.Infof("ending match %v for player %v", s.Match().ID, playerID)
		s.NewMatch()
	}
}

func (m *Manager) StatsPath(playerID string) string {
	name := unsafeFileChars.ReplaceAllString(playerID, "")
	if name == "" {
		name = "unknown"
	}

	return filepath.Join(m.StatsDir, name+".json")
}

// Close saves every open session.
func (m *Manager) Close() {
	m.Lock()
	defer m.Unlock()

	for id, s := range m.sessions {
		log.Debugf("saving session for player %v", id)
		s.Close()
	}
}
