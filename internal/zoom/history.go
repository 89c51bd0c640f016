package zoom

// Direction of a zoom operation.
type Direction string

const (
	// DirectionExpand shows more detail.
	DirectionExpand Direction = "expand"
	// DirectionCollapse returns to structure only.
	DirectionCollapse Direction = "collapse"
)

const defaultMaxHistory = 50

// HistoryEntry records one zoom action for undo/redo.
type HistoryEntry struct {
	Target    Target    `json:"target"`
	Direction Direction `json:"direction"`
	// PreviousDepth is what the target showed before this action, so
	// undo knows where to return.
	PreviousDepth Depth `json:"previous_depth"`
	Timestamp     int64 `json:"timestamp"`
}

// History tracks zoom actions with undo and redo. Recording while not
// at the end of the stack discards the redo tail, like an editor.
type History struct {
	Entries  []HistoryEntry `json:"entries"`
	Position int            `json:"position"`
	MaxSize  int            `json:"max_size"`
}

// NewHistory creates a history with the default capacity.
func NewHistory() *History {
	return &History{MaxSize: defaultMaxHistory}
}

// NewHistoryWithMaxSize creates a history holding at most maxSize
// entries.
func NewHistoryWithMaxSize(maxSize int) *History {
	return &History{MaxSize: maxSize}
}

// Record appends an entry, truncating any redo tail and evicting the
// oldest entry when over capacity.
func (h *History) Record(entry HistoryEntry) {
	h.Entries = h.Entries[:h.Position]
	h.Entries = append(h.Entries, entry)
	h.Position = len(h.Entries)

	if h.MaxSize > 0 && len(h.Entries) > h.MaxSize {
		h.Entries = h.Entries[1:]
		h.Position = len(h.Entries)
	}
}

// CanUndo reports whether an entry is available to undo.
func (h *History) CanUndo() bool {
	return h.Position > 0
}

// CanRedo reports whether an undone entry can be reapplied.
func (h *History) CanRedo() bool {
	return h.Position < len(h.Entries)
}

// Undo steps back and returns the entry to revert, or nil.
func (h *History) Undo() *HistoryEntry {
	if !h.CanUndo() {
		return nil
	}
	h.Position--
	return &h.Entries[h.Position]
}

// Redo steps forward and returns the entry to reapply, or nil.
func (h *History) Redo() *HistoryEntry {
	if !h.CanRedo() {
		return nil
	}
	entry := &h.Entries[h.Position]
	h.Position++
	return entry
}

// Clear discards all entries.
func (h *History) Clear() {
	h.Entries = nil
	h.Position = 0
}
