package zoom

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const storeVersion = "1.0"

// SessionStore holds all sessions and tracks which one is active. It
// round-trips through a versioned JSON file under the project's
// .codescope directory.
type SessionStore struct {
	Version string `json:"version"`

	Sessions map[string]*Session `json:"sessions"`

	ActiveSession string `json:"active_session,omitempty"`

	// not persisted
	storePath string
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		Version:  storeVersion,
		Sessions: make(map[string]*Session),
	}
}

// DefaultStorePath is the project-local session file location.
func DefaultStorePath(projectRoot string) string {
	return filepath.Join(projectRoot, ".codescope", "sessions.json")
}

// LoadStore reads sessions from a JSON file. A missing file yields an
// empty store bound to the same path.
func LoadStore(path string) (*SessionStore, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		store := NewSessionStore()
		store.storePath = path
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}

	store := NewSessionStore()
	if err := json.Unmarshal(content, store); err != nil {
		return nil, fmt.Errorf("failed to parse sessions: %w", err)
	}
	store.storePath = path
	if store.Version == "" {
		store.Version = storeVersion
	}
	if store.Sessions == nil {
		store.Sessions = make(map[string]*Session)
	}
	for _, s := range store.Sessions {
		if s.History == nil {
			s.History = NewHistory()
		}
		if s.History.MaxSize == 0 {
			s.History.MaxSize = defaultMaxHistory
		}
	}
	return store, nil
}

// Save writes the store back to its file, creating the directory if
// needed.
func (s *SessionStore) Save() error {
	if s.storePath == "" {
		return fmt.Errorf("no store path configured")
	}

	if dir := filepath.Dir(s.storePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	content, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize sessions: %w", err)
	}
	if err := os.WriteFile(s.storePath, content, 0o644); err != nil {
		return fmt.Errorf("failed to write sessions: %w", err)
	}
	return nil
}

// WithPersistence loads the store, applies fn, and saves the result.
func WithPersistence(path string, fn func(*SessionStore) error) error {
	store, err := LoadStore(path)
	if err != nil {
		return err
	}
	if err := fn(store); err != nil {
		return err
	}
	return store.Save()
}

// CreateSession makes a new session and switches to it.
func (s *SessionStore) CreateSession(name string) *Session {
	session := NewSession(name)
	s.Sessions[name] = session
	s.ActiveSession = name
	return session
}

// CreateSessionWithDescription makes a described session and switches
// to it.
func (s *SessionStore) CreateSessionWithDescription(name, description string) *Session {
	session := NewSessionWithDescription(name, description)
	s.Sessions[name] = session
	s.ActiveSession = name
	return session
}

// GetSession returns a session by name.
func (s *SessionStore) GetSession(name string) (*Session, bool) {
	session, ok := s.Sessions[name]
	return session, ok
}

// Active returns the active session, or nil.
func (s *SessionStore) Active() *Session {
	if s.ActiveSession == "" {
		return nil
	}
	return s.Sessions[s.ActiveSession]
}

// SetActive switches the active session and touches it.
func (s *SessionStore) SetActive(name string) error {
	session, ok := s.Sessions[name]
	if !ok {
		return fmt.Errorf("session %q not found", name)
	}
	session.Touch()
	s.ActiveSession = name
	return nil
}

// SessionMeta summarizes a session for listings.
type SessionMeta struct {
	Name         string
	Active       bool
	LastAccessed string
}

// ListSessions returns metadata for every session.
func (s *SessionStore) ListSessions() []SessionMeta {
	metas := make([]SessionMeta, 0, len(s.Sessions))
	for name, session := range s.Sessions {
		metas = append(metas, SessionMeta{
			Name:         name,
			Active:       name == s.ActiveSession,
			LastAccessed: session.LastAccessed,
		})
	}
	return metas
}

// DeleteSession removes a session, clearing the active marker if it
// pointed there.
func (s *SessionStore) DeleteSession(name string) error {
	if _, ok := s.Sessions[name]; !ok {
		return fmt.Errorf("session %q not found", name)
	}
	delete(s.Sessions, name)
	if s.ActiveSession == name {
		s.ActiveSession = ""
	}
	return nil
}

// SessionCount is the number of stored sessions.
func (s *SessionStore) SessionCount() int {
	return len(s.Sessions)
}
