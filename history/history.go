// Package history persists watch progress so partially watched content
// can resume where it left off.
package history

import (
	"sort"
	"sync"
	"time"

	"github.com/alorle/iptv-deck/diskcache"
)

// storageKey is the snapshot key the whole history is saved under
const storageKey = "watch_history"

// nearlyFinishedPct is the threshold above which content counts as
// watched and drops out of Continue Watching
const nearlyFinishedPct = 95.0

// Progress records how far through one piece of content the user is
type Progress struct {
	ContentID    string  `json:"content_id"`
	Title        string  `json:"title"`
	Kind         string  `json:"kind"` // "movie", "series", "channel"
	PositionSecs float64 `json:"position_secs"`
	DurationSecs float64 `json:"duration_secs"`
	UpdatedAt    int64   `json:"updated_at"`
	Season       int     `json:"season,omitempty"`
	Episode      int     `json:"episode,omitempty"`
}

// Percentage returns the watched fraction as 0-100
func (p Progress) Percentage() float64 {
	if p.DurationSecs <= 0 {
		return 0
	}
	return p.PositionSecs / p.DurationSecs * 100
}

// NearlyFinished reports whether the content counts as fully watched
func (p Progress) NearlyFinished() bool {
	return p.Percentage() >= nearlyFinishedPct
}

// History is the persisted set of watch progress entries. All methods
// are safe for concurrent use.
type History struct {
	mu      sync.Mutex
	entries map[string]Progress
	storage diskcache.Storage
	now     func() time.Time
}

// Load reads the persisted history from storage, starting empty when
// nothing was saved yet or the snapshot is unreadable
func Load(storage diskcache.Storage) *History {
	h := &History{
		entries: make(map[string]Progress),
		storage: storage,
		now:     time.Now,
	}
	if saved, ok := diskcache.Load[map[string]Progress](storage, storageKey, 0); ok {
		h.entries = saved
	}
	return h
}

// Update records progress for one piece of content and persists the
// history. UpdatedAt is stamped here.
func (h *History) Update(p Progress) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	p.UpdatedAt = h.now().Unix()
	h.entries[p.ContentID] = p
	return h.save()
}

// Get returns the recorded progress for a content ID
func (h *History) Get(contentID string) (Progress, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, ok := h.entries[contentID]
	return p, ok
}

// ContinueWatching returns the most recently watched unfinished
// entries, newest first, capped at limit
func (h *History) ContinueWatching(limit int) []Progress {
	h.mu.Lock()
	defer h.mu.Unlock()

	var items []Progress
	for _, p := range h.entries {
		if !p.NearlyFinished() {
			items = append(items, p)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].UpdatedAt > items[j].UpdatedAt
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// Remove deletes the progress for one content ID
func (h *History) Remove(contentID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.entries, contentID)
	return h.save()
}

// Clear deletes all progress
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = make(map[string]Progress)
	return h.save()
}

// Len returns the number of recorded entries
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// save persists the history. Caller holds the lock.
func (h *History) save() error {
	return diskcache.Save(h.storage, storageKey, h.entries)
}
