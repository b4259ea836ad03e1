package handlers

import (
	"sync"

	"github.com/Shad0wcrushers/IDGuides/internal/docstore"
)

// NoticeBuffer collects notices emitted by store operations and hands
// them to the next rendered page. Register Record as the store's
// notifier.
type NoticeBuffer struct {
	mu      sync.Mutex
	notices []docstore.Notice
}

// Record appends a notice. Safe for concurrent use.
func (b *NoticeBuffer) Record(n docstore.Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notices = append(b.notices, n)
}

// Drain returns the buffered notices and clears the buffer.
func (b *NoticeBuffer) Drain() []docstore.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.notices
	b.notices = nil
	return out
}
