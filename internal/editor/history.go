package editor

// History keeps an undo/redo stack of body snapshots. Snapshots are the
// canonical serialization, so structural comparison is a string compare and
// undo/redo round trips are byte identical.
//
// The history is linear: recording a new snapshot after an undo discards
// the redo branch.
type History struct {
	entries  []string
	position int
	redo     []string
}

// NewHistory initializes the stack with the document's starting body as the
// sole entry.
func NewHistory(initial string) *History {
	return &History{entries: []string{initial}}
}

// Current returns the snapshot at the cursor.
func (h *History) Current() string {
	return h.entries[h.position]
}

// Len returns the number of entries reachable by undo, the cursor included.
func (h *History) Len() int {
	return h.position + 1
}

// CanUndo reports whether an undo would move the cursor.
func (h *History) CanUndo() bool { return h.position > 0 }

// CanRedo reports whether a redo branch exists.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// RecordIfChanged appends body as a new entry when it differs from the
// current snapshot and is non-empty. This is the only way new entries are
// created; the autosave tick drives it on a fixed interval rather than on
// every keystroke. Returns true when an entry was recorded.
func (h *History) RecordIfChanged(body string) bool {
	if body == "" || body == h.entries[h.position] {
		return false
	}
	h.entries = append(h.entries[:h.position+1], body)
	h.position++
	h.redo = nil
	return true
}

// Undo steps the cursor back and returns the restored snapshot for the
// caller to paint into the live surface. The second return is false when
// there is nothing to undo.
func (h *History) Undo() (string, bool) {
	if h.position == 0 {
		return "", false
	}
	h.redo = append(h.redo, h.entries[h.position])
	h.entries = h.entries[:h.position]
	h.position--
	return h.entries[h.position], true
}

// Redo restores the most recently undone snapshot. The second return is
// false when the redo buffer is empty.
func (h *History) Redo() (string, bool) {
	if len(h.redo) == 0 {
		return "", false
	}
	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.entries = append(h.entries, last)
	h.position++
	return last, true
}
