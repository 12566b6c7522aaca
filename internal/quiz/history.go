package quiz

// History is the list of items presented in a session plus a cursor.
// Entries after the cursor are the "future" reachable with Forward.
type History struct {
	items  []Item
	cursor int
}

// Push drops any entries after the cursor, appends it and moves the cursor to it.
func (h *History) Push(it Item) {
	if len(h.items) > 0 {
		h.items = h.items[:h.cursor+1]
	}
	h.items = append(h.items, it)
	h.cursor = len(h.items) - 1
}

// Back moves the cursor one step towards the start.
func (h *History) Back() (Item, bool) {
	if h.cursor == 0 || len(h.items) == 0 {
		return nil, false
	}
	h.cursor--
	return h.items[h.cursor], true
}

// Forward moves the cursor one step towards the tail.
func (h *History) Forward() (Item, bool) {
	if h.AtTail() {
		return nil, false
	}
	h.cursor++
	return h.items[h.cursor], true
}

// Current returns the item under the cursor, or nil when empty.
func (h *History) Current() Item {
	if len(h.items) == 0 {
		return nil
	}
	return h.items[h.cursor]
}

func (h *History) Index() int { return h.cursor }

func (h *History) Len() int { return len(h.items) }

// AtTail reports whether the cursor is on the newest entry.
func (h *History) AtTail() bool {
	return h.cursor >= len(h.items)-1
}

// Items returns a copy of the presented items, oldest first.
func (h *History) Items() []Item {
	out := make([]Item, len(h.items))
	copy(out, h.items)
	return out
}

// HistoryView is a read-only snapshot of a History.
type HistoryView struct {
	items  []Item
	cursor int
}

// View snapshots h. Later changes to h do not show through.
func (h *History) View() HistoryView {
	return HistoryView{items: h.Items(), cursor: h.cursor}
}

func (v HistoryView) Index() int { return v.cursor }

func (v HistoryView) Len() int { return len(v.items) }

func (v HistoryView) AtTail() bool { return v.cursor >= len(v.items)-1 }

// Items returns a copy of the presented items, oldest first.
func (v HistoryView) Items() []Item {
	return append([]Item(nil), v.items...)
}
