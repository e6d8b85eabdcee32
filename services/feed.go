package services

import (
	"sync"

	"SocialStream/models"
)

const DefaultFeedCapacity = 50

// ContentFeed is a bounded, append-only log of cycle outcomes. Once full,
// each append evicts the oldest entry.
type ContentFeed struct {
	mu       sync.RWMutex
	entries  []models.ContentLogEntry
	head     int // index of the oldest entry once the ring is full
	capacity int
}

func NewContentFeed(capacity int) *ContentFeed {
	if capacity <= 0 {
		capacity = DefaultFeedCapacity
	}
	return &ContentFeed{
		entries:  make([]models.ContentLogEntry, 0, capacity),
		capacity: capacity,
	}
}

func (f *ContentFeed) Append(entry models.ContentLogEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.entries) < f.capacity {
		f.entries = append(f.entries, entry)
		return
	}
	f.entries[f.head] = entry
	f.head = (f.head + 1) % f.capacity
}

// Entries returns a copy, newest first.
func (f *ContentFeed) Entries() []models.ContentLogEntry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	n := len(f.entries)
	out := make([]models.ContentLogEntry, n)
	for i := 0; i < n; i++ {
		// newest is just before head
		idx := (f.head - 1 - i + 2*n) % n
		out[i] = f.entries[idx]
	}
	return out
}

func (f *ContentFeed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries)
}

func (f *ContentFeed) Capacity() int { return f.capacity }
