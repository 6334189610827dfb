package handler

import (
	"fmt"
	"sync"
)

// markerSet records comments just pushed to the site so the webhook echo for
// the same comment is recognized and not relayed back into the thread.
// Entries are consumed on first match; an echo that never arrives leaves its
// entry behind, which costs memory but never correctness.
type markerSet struct {
	mu  sync.Mutex
	set map[string]struct{}
}

func newMarkerSet() *markerSet {
	return &markerSet{set: make(map[string]struct{})}
}

func (m *markerSet) Add(key string) {
	m.mu.Lock()
	m.set[key] = struct{}{}
	m.mu.Unlock()
}

// Consume removes the key and reports whether it was present.
func (m *markerSet) Consume(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.set[key]; ok {
		delete(m.set, key)
		return true
	}
	return false
}

// threadMessageKey builds the composite dedup key for a relayed comment.
func threadMessageKey(guildID, suggestionID string, commentID int64) string {
	return fmt.Sprintf("%s-%s-%d", guildID, suggestionID, commentID)
}
