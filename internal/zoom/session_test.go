package zoom

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for sessions and history:
// - Record/undo/redo with position bookkeeping
// - Recording mid-history discards the redo tail
// - Max size evicts the oldest entry
// - Session add/remove zoom updates active set and history
// - Adding an existing target replaces its depth
// - Store create/get/active/delete and JSON round-trip on disk
// - Loading a missing file yields an empty, saveable store

func TestHistoryRecordUndoRedo(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	entry := HistoryEntry{
		Target:        Target{Kind: KindFunction, Name: "test"},
		Direction:     DirectionExpand,
		PreviousDepth: DepthSignature,
		Timestamp:     12345,
	}

	h.Record(entry)
	assert.Equal(t, 1, h.Position)
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	undone := h.Undo()
	require.NotNil(t, undone)
	assert.Equal(t, "test", undone.Target.Name)
	assert.False(t, h.CanUndo())
	assert.True(t, h.CanRedo())

	redone := h.Redo()
	require.NotNil(t, redone)
	assert.Equal(t, "test", redone.Target.Name)
	assert.False(t, h.CanRedo())

	assert.Nil(t, h.Redo())
}

func TestHistoryRecordTruncatesRedoTail(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	for _, name := range []string{"a", "b", "c"} {
		h.Record(HistoryEntry{Target: Target{Kind: KindFunction, Name: name}})
	}

	h.Undo()
	h.Undo()
	require.True(t, h.CanRedo())

	h.Record(HistoryEntry{Target: Target{Kind: KindFunction, Name: "d"}})

	assert.False(t, h.CanRedo())
	require.Len(t, h.Entries, 2)
	assert.Equal(t, "a", h.Entries[0].Target.Name)
	assert.Equal(t, "d", h.Entries[1].Target.Name)
}

func TestHistoryMaxSizeEvictsOldest(t *testing.T) {
	t.Parallel()

	h := NewHistoryWithMaxSize(2)
	for _, name := range []string{"a", "b", "c"} {
		h.Record(HistoryEntry{Target: Target{Kind: KindFunction, Name: name}})
	}

	require.Len(t, h.Entries, 2)
	assert.Equal(t, "b", h.Entries[0].Target.Name)
	assert.Equal(t, "c", h.Entries[1].Target.Name)
	assert.Equal(t, 2, h.Position)
}

func TestSessionAddRemoveZoom(t *testing.T) {
	t.Parallel()

	s := NewSession("explore")
	assert.NotEmpty(t, s.ID)
	assert.NotEmpty(t, s.CreatedAt)

	fn := Target{Kind: KindFunction, Name: "pack"}
	s.AddZoom(fn, DepthFull)

	assert.True(t, s.IsZoomed(fn))
	depth, ok := s.GetDepth(fn)
	require.True(t, ok)
	assert.Equal(t, DepthFull, depth)
	assert.Equal(t, 1, s.ZoomCount())

	// Re-adding replaces the depth without duplicating the entry.
	s.AddZoom(fn, DepthImplementation)
	assert.Equal(t, 1, s.ZoomCount())
	depth, _ = s.GetDepth(fn)
	assert.Equal(t, DepthImplementation, depth)

	assert.True(t, s.RemoveZoom(fn))
	assert.False(t, s.IsZoomed(fn))
	assert.False(t, s.RemoveZoom(fn))

	// Two expands and one collapse recorded.
	assert.Len(t, s.History.Entries, 3)
	assert.Equal(t, DirectionCollapse, s.History.Entries[2].Direction)
	assert.Equal(t, DepthImplementation, s.History.Entries[2].PreviousDepth)
}

func TestStoreLifecycle(t *testing.T) {
	t.Parallel()

	store := NewSessionStore()
	assert.Equal(t, 0, store.SessionCount())
	assert.Nil(t, store.Active())

	store.CreateSession("first")
	store.CreateSessionWithDescription("second", "deep dive")

	assert.Equal(t, 2, store.SessionCount())
	assert.Equal(t, "second", store.Active().Name)

	second, ok := store.GetSession("second")
	require.True(t, ok)
	assert.Equal(t, "deep dive", second.Description)

	require.NoError(t, store.SetActive("first"))
	assert.Equal(t, "first", store.Active().Name)
	assert.Error(t, store.SetActive("missing"))

	metas := store.ListSessions()
	assert.Len(t, metas, 2)

	require.NoError(t, store.DeleteSession("first"))
	assert.Nil(t, store.Active())
	assert.Error(t, store.DeleteSession("first"))
}

func TestStorePersistenceRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".codescope", "sessions.json")

	err := WithPersistence(path, func(store *SessionStore) error {
		session := store.CreateSession("audit")
		session.AddZoom(Target{Kind: KindClass, Name: "Engine"}, DepthFull)
		session.AddZoom(Target{Kind: KindFile, Path: "src/main.go", StartLine: 1, EndLine: 40}, DepthSignature)
		return nil
	})
	require.NoError(t, err)

	loaded, err := LoadStore(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0", loaded.Version)
	assert.Equal(t, "audit", loaded.ActiveSession)

	session, ok := loaded.GetSession("audit")
	require.True(t, ok)
	assert.Equal(t, 2, session.ZoomCount())
	assert.True(t, session.IsZoomed(Target{Kind: KindClass, Name: "Engine"}))
	assert.Equal(t, defaultMaxHistory, session.History.MaxSize)
	assert.Len(t, session.History.Entries, 2)
}

func TestLoadStoreMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nope", "sessions.json")
	store, err := LoadStore(path)
	require.NoError(t, err)
	assert.Equal(t, 0, store.SessionCount())

	// A fresh store remembers the path and can save immediately.
	store.CreateSession("new")
	require.NoError(t, store.Save())
}
