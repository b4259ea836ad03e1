package docstore

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/Shad0wcrushers/IDGuides/internal/models"
	"github.com/Shad0wcrushers/IDGuides/internal/persist"
)

// fakeClock hands out strictly increasing timestamps so ordering
// assertions are deterministic.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

// noticeRecorder collects notices emitted by store operations.
type noticeRecorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *noticeRecorder) record(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *noticeRecorder) all() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

func (r *noticeRecorder) last(t *testing.T) Notice {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		t.Fatal("no notices recorded")
	}
	return r.notices[len(r.notices)-1]
}

// newTestStore builds a store over an in-memory KV with a fake clock and
// notice recorder.
func newTestStore(t *testing.T) (*Store, *persist.Mem, *noticeRecorder) {
	t.Helper()
	kv := persist.NewMem()
	rec := &noticeRecorder{}
	s, err := New(kv, WithClock(newFakeClock().Now), WithNotifier(rec.record))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, kv, rec
}

func TestNewSeedsFromBootstrap(t *testing.T) {
	s, _, _ := newTestStore(t)
	snap := s.Snapshot()

	if len(snap.Categories) != len(models.BootstrapCategories()) {
		t.Errorf("categories: got %d, want %d", len(snap.Categories), len(models.BootstrapCategories()))
	}
	if len(snap.Pages) != len(models.BootstrapPages()) {
		t.Errorf("pages: got %d, want %d", len(snap.Pages), len(models.BootstrapPages()))
	}
	if len(snap.Users) != len(models.BootstrapUsers()) {
		t.Errorf("users: got %d, want %d", len(snap.Users), len(models.BootstrapUsers()))
	}
	if snap.CurrentUser != nil {
		t.Error("expected no principal on fresh store")
	}
	if snap.CurrentPage != nil {
		t.Error("expected no current page on fresh store")
	}
}

func TestNewLoadsPagesFromDurableStorage(t *testing.T) {
	kv := persist.NewMem()
	stored := []models.DocPage{{ID: "p-durable", Title: "Durable", Slug: "durable", CategoryID: "cat-1"}}
	data, _ := json.Marshal(stored)
	kv.Set(persist.KeyPages, data)

	s, err := New(kv)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Pages) != 1 || snap.Pages[0].ID != "p-durable" {
		t.Errorf("expected the durable page collection, got %d pages", len(snap.Pages))
	}
	// Categories still come from bootstrap — durable storage never
	// overrides them.
	if len(snap.Categories) != len(models.BootstrapCategories()) {
		t.Errorf("categories: got %d, want bootstrap set", len(snap.Categories))
	}
}

func TestNewRecoversFromCorruptPages(t *testing.T) {
	kv := persist.NewMem()
	kv.Set(persist.KeyPages, []byte("{not json"))

	s, err := New(kv)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Pages) != len(models.BootstrapPages()) {
		t.Errorf("expected bootstrap fallback, got %d pages", len(snap.Pages))
	}
	// The corrupt entry must be cleared so it does not repeat next load.
	if _, ok, _ := kv.Get(persist.KeyPages); ok {
		t.Error("corrupt pages key should have been cleared")
	}
}

func TestNewRestoresSession(t *testing.T) {
	kv := persist.NewMem()
	u := models.User{ID: "user-1", Email: "admin@example.com", Name: "Admin User", Role: models.RoleAdmin}
	data, _ := json.Marshal(u)
	kv.Set(persist.KeySession, data)

	s, err := New(kv)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	snap := s.Snapshot()
	if snap.CurrentUser == nil || snap.CurrentUser.Email != "admin@example.com" {
		t.Errorf("expected restored principal, got %+v", snap.CurrentUser)
	}
}

func TestNewDiscardsCorruptSession(t *testing.T) {
	kv := persist.NewMem()
	kv.Set(persist.KeySession, []byte("garbage"))

	s, err := New(kv)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if s.Snapshot().CurrentUser != nil {
		t.Error("expected no principal from corrupt session data")
	}
	if _, ok, _ := kv.Get(persist.KeySession); ok {
		t.Error("corrupt session key should have been cleared")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	kv := persist.NewMem()
	rec := &noticeRecorder{}
	s1, err := New(kv, WithClock(newFakeClock().Now), WithNotifier(rec.record))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// A mixed sequence of mutations.
	added := s1.AddPage(PageInput{Title: "Round Trip", Slug: "round-trip", CategoryID: "cat-3", Order: 7})
	title := "Round Trip (edited)"
	s1.UpdatePage(added.ID, PagePatch{Title: &title})
	s1.DeletePage("page-4")
	before := s1.Snapshot().Pages

	// Simulate a restart: a fresh store over the same KV.
	s2, err := New(kv)
	if err != nil {
		t.Fatalf("New after restart: %v", err)
	}
	after := s2.Snapshot().Pages

	if len(after) != len(before) {
		t.Fatalf("pages after reload: got %d, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i].ID != before[i].ID || after[i].Title != before[i].Title ||
			!after[i].UpdatedAt.Equal(before[i].UpdatedAt) || after[i].Views != before[i].Views {
			t.Errorf("page %d differs after reload: got %+v, want %+v", i, after[i], before[i])
		}
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s, _, _ := newTestStore(t)

	snap := s.Snapshot()
	snap.Pages[0].Title = "tampered"
	snap.Categories[0].Title = "tampered"
	if snap.Pages[0].PublishedAt != nil {
		*snap.Pages[0].PublishedAt = time.Time{}
	}

	fresh := s.Snapshot()
	if fresh.Pages[0].Title == "tampered" || fresh.Categories[0].Title == "tampered" {
		t.Error("mutating a snapshot leaked into the store")
	}
	if orig := models.BootstrapPages()[0]; fresh.Pages[0].PublishedAt == nil ||
		!fresh.Pages[0].PublishedAt.Equal(*orig.PublishedAt) {
		t.Error("mutating a snapshot's PublishedAt leaked into the store")
	}
}

func TestSnapshotVersionAdvances(t *testing.T) {
	s, _, _ := newTestStore(t)

	v0 := s.Snapshot().Version
	s.AddCategory(CategoryInput{Title: "New", Slug: "new", Order: 9})
	v1 := s.Snapshot().Version
	if v1 <= v0 {
		t.Errorf("version did not advance: %d -> %d", v0, v1)
	}

	// Reads do not bump the version.
	if got := s.Snapshot().Version; got != v1 {
		t.Errorf("read bumped version: %d -> %d", v1, got)
	}
}

func TestSubscribeDeliversCommits(t *testing.T) {
	s, _, _ := newTestStore(t)

	var mu sync.Mutex
	var changes []Change
	var versions []uint64
	cancel := s.Subscribe(func(snap Snapshot, ch Change) {
		mu.Lock()
		changes = append(changes, ch)
		versions = append(versions, snap.Version)
		mu.Unlock()
	})

	cat := s.AddCategory(CategoryInput{Title: "Subs", Slug: "subs", Order: 8})
	s.UpdateCategory(cat.ID, CategoryPatch{})

	mu.Lock()
	if len(changes) != 2 {
		t.Fatalf("got %d deliveries, want 2", len(changes))
	}
	if changes[0].Op != OpCategoryAdd || changes[0].ID != cat.ID {
		t.Errorf("first change = %+v", changes[0])
	}
	if changes[1].Op != OpCategoryUpdate {
		t.Errorf("second change = %+v", changes[1])
	}
	if versions[1] <= versions[0] {
		t.Errorf("snapshot versions not increasing: %v", versions)
	}
	mu.Unlock()

	// After cancel, no further deliveries.
	cancel()
	s.AddCategory(CategoryInput{Title: "After", Slug: "after", Order: 10})
	mu.Lock()
	if len(changes) != 2 {
		t.Errorf("delivery after cancel: got %d, want 2", len(changes))
	}
	mu.Unlock()
}
