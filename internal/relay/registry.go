package relay

import (
	"sync"
)

// Registry tracks live relay sessions for health and metrics reporting.
// Sessions never share state; the registry is observation only.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.Key()] = s
}

func (r *Registry) Remove(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, key)
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

type SessionInfo struct {
	Key             string `json:"key"`
	TranscriptionID string `json:"transcription_id"`
	State           string `json:"state"`
}

func (r *Registry) List() []SessionInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]SessionInfo, 0, len(r.sessions))
	for _, s := range r.sessions {
		infos = append(infos, SessionInfo{
			Key:             s.Key(),
			TranscriptionID: s.TranscriptionID(),
			State:           s.State().String(),
		})
	}
	return infos
}
