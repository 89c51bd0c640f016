package zoom

import (
	"time"

	"github.com/google/uuid"
)

// ActiveZoom is one currently expanded target and its depth.
type ActiveZoom struct {
	Target Target `json:"target"`
	Depth  Depth  `json:"depth"`
}

// Session is a named set of active zooms with history, persisted so an
// exploration can be resumed across invocations.
type Session struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	CreatedAt    string            `json:"created_at"`
	LastAccessed string            `json:"last_accessed"`
	Description  string            `json:"description,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`

	ActiveZooms []ActiveZoom `json:"active_zooms"`
	History     *History     `json:"history"`
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// NewSession creates an empty session.
func NewSession(name string) *Session {
	now := timestamp()
	return &Session{
		ID:           uuid.NewString(),
		Name:         name,
		CreatedAt:    now,
		LastAccessed: now,
		History:      NewHistory(),
	}
}

// NewSessionWithDescription creates a session carrying a description.
func NewSessionWithDescription(name, description string) *Session {
	s := NewSession(name)
	s.Description = description
	return s
}

// AddZoom expands a target at the given depth, replacing the depth if
// the target is already active.
func (s *Session) AddZoom(target Target, depth Depth) {
	s.History.Record(HistoryEntry{
		Target:        target,
		Direction:     DirectionExpand,
		PreviousDepth: DepthSignature,
		Timestamp:     time.Now().Unix(),
	})

	for i := range s.ActiveZooms {
		if s.ActiveZooms[i].Target == target {
			s.ActiveZooms[i].Depth = depth
			s.Touch()
			return
		}
	}
	s.ActiveZooms = append(s.ActiveZooms, ActiveZoom{Target: target, Depth: depth})
	s.Touch()
}

// RemoveZoom collapses a target. It reports whether the target was
// active.
func (s *Session) RemoveZoom(target Target) bool {
	for i := range s.ActiveZooms {
		if s.ActiveZooms[i].Target != target {
			continue
		}
		prev := s.ActiveZooms[i].Depth
		s.ActiveZooms = append(s.ActiveZooms[:i], s.ActiveZooms[i+1:]...)

		s.History.Record(HistoryEntry{
			Target:        target,
			Direction:     DirectionCollapse,
			PreviousDepth: prev,
			Timestamp:     time.Now().Unix(),
		})
		s.Touch()
		return true
	}
	return false
}

// Touch updates the last-accessed timestamp.
func (s *Session) Touch() {
	s.LastAccessed = timestamp()
}

// IsZoomed reports whether a target is currently expanded.
func (s *Session) IsZoomed(target Target) bool {
	for _, z := range s.ActiveZooms {
		if z.Target == target {
			return true
		}
	}
	return false
}

// GetDepth returns the depth of an active target.
func (s *Session) GetDepth(target Target) (Depth, bool) {
	for _, z := range s.ActiveZooms {
		if z.Target == target {
			return z.Depth, true
		}
	}
	return "", false
}

// ZoomCount is the number of active zooms.
func (s *Session) ZoomCount() int {
	return len(s.ActiveZooms)
}
