// Package docstore holds the portal's authoritative state: the category,
// page, and user collections plus the two session pointers (signed-in
// principal, currently viewed page). Every mutation goes through its
// operations; no other component writes to durable storage.
//
// The store hands out version-stamped copy-on-write snapshots. Consumers
// never see in-place mutation: a snapshot taken before a commit stays
// internally consistent, it is just no longer current.
package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Shad0wcrushers/IDGuides/internal/models"
	"github.com/Shad0wcrushers/IDGuides/internal/persist"
)

// Sentinel errors returned by store operations. Constraint rejections are
// reported, never panicked; state is unchanged when they occur.
var (
	// ErrCategoryInUse rejects deletion of a category that still has pages.
	ErrCategoryInUse = errors.New("category has pages")

	// ErrInvalidCredentials is returned for any failed login. It never
	// distinguishes an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Notice levels.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice is a user-facing notification emitted by store operations. The
// HTTP layer renders these as flash messages.
type Notice struct {
	Level   string
	Message string
}

// Change describes a committed mutation, delivered to subscribers along
// with the new snapshot. Silent marks mutations whose notice was
// suppressed (view-count increments).
type Change struct {
	Op     string
	ID     string
	Silent bool
}

// Change operations.
const (
	OpCategoryAdd    = "category.add"
	OpCategoryUpdate = "category.update"
	OpCategoryDelete = "category.delete"
	OpPageAdd        = "page.add"
	OpPageUpdate     = "page.update"
	OpPageDelete     = "page.delete"
	OpUserAdd        = "user.add"
	OpUserUpdate     = "user.update"
	OpUserDelete     = "user.delete"
	OpLogin          = "session.login"
	OpLogout         = "session.logout"
	OpViewsReset     = "views.reset"
	OpCurrentPage    = "session.current_page"
)

// Option configures a Store at construction.
type Option func(*Store)

// WithNotifier registers the notification sink. Without it notices are
// dropped.
func WithNotifier(fn func(Notice)) Option {
	return func(s *Store) { s.notify = fn }
}

// WithClock overrides the time source. Used by tests to pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is the single source of truth for portal state. All operations are
// synchronous and atomic; the mutex gives them a total order.
type Store struct {
	mu sync.Mutex

	kv       persist.KV
	now      func() time.Time
	notify   func(Notice)
	demoHash []byte

	categories []models.Category
	pages      []models.DocPage
	users      []models.User

	currentUser *models.User
	currentPage *models.DocPage

	version uint64
	subs    map[int]func(Snapshot, Change)
	nextSub int
}

// New constructs a Store over the given durable storage. Pages and users
// load from their durable keys with bootstrap fallback; categories always
// come from the bootstrap set. A previously signed-in principal is restored
// from the session key; corrupt durable data never fails construction —
// the offending key is cleared and the bootstrap/empty state used instead.
func New(kv persist.KV, opts ...Option) (*Store, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(models.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("docstore: hash demo password: %w", err)
	}

	s := &Store{
		kv:       kv,
		now:      time.Now,
		demoHash: hash,
		subs:     make(map[int]func(Snapshot, Change)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.categories = models.BootstrapCategories()
	s.pages = loadCollection(kv, persist.KeyPages, models.BootstrapPages)
	s.users = loadCollection(kv, persist.KeyUsers, models.BootstrapUsers)
	s.currentUser = loadSession(kv)

	return s, nil
}

// loadCollection reads a durable collection, falling back to bootstrap when
// the key is absent or unparsable. A corrupt entry is cleared so it does
// not repeat on the next load.
func loadCollection[T any](kv persist.KV, key string, bootstrap func() []T) []T {
	data, ok, err := kv.Get(key)
	if err != nil {
		slog.Warn("durable read failed, using bootstrap data", "key", key, "error", err)
		return bootstrap()
	}
	if !ok {
		return bootstrap()
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Warn("durable data corrupt, clearing and using bootstrap data", "key", key, "error", err)
		if derr := kv.Delete(key); derr != nil {
			slog.Warn("failed to clear corrupt key", "key", key, "error", derr)
		}
		return bootstrap()
	}
	return items
}

// loadSession restores the persisted principal, or nil. Corrupt session
// data is discarded and the durable entry cleared.
func loadSession(kv persist.KV) *models.User {
	data, ok, err := kv.Get(persist.KeySession)
	if err != nil || !ok {
		if err != nil {
			slog.Warn("session read failed", "error", err)
		}
		return nil
	}

	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		slog.Warn("stored session corrupt, clearing", "error", err)
		if derr := kv.Delete(persist.KeySession); derr != nil {
			slog.Warn("failed to clear corrupt session", "error", derr)
		}
		return nil
	}
	return &u
}

// commitLocked bumps the version and captures the snapshot plus the
// subscriber list. Callers hold s.mu and deliver after unlocking.
func (s *Store) commitLocked() (Snapshot, []func(Snapshot, Change)) {
	s.version++
	snap := s.snapshotLocked()
	subs := make([]func(Snapshot, Change), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return snap, subs
}

// deliver invokes subscribers outside the lock, in registration-arbitrary
// order, each with the same committed snapshot.
func (s *Store) deliver(snap Snapshot, change Change, subs []func(Snapshot, Change)) {
	for _, fn := range subs {
		fn(snap, change)
	}
}

// Subscribe registers fn to run synchronously after every committed
// mutation. The returned cancel function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot, Change)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notifySuccess(format string, args ...any) {
	if s.notify != nil {
		s.notify(Notice{Level: NoticeSuccess, Message: fmt.Sprintf(format, args...)})
	}
}

func (s *Store) notifyError(format string, args ...any) {
	if s.notify != nil {
		s.notify(Notice{Level: NoticeError, Message: fmt.Sprintf(format, args...)})
	}
}

// persistPagesLocked writes the full page collection through to durable
// storage. Persistence failures are logged, not propagated — the in-memory
// state remains authoritative for the running process.
func (s *Store) persistPagesLocked() {
	data, err := json.Marshal(s.pages)
	if err != nil {
		slog.Error("marshal pages failed", "error", err)
		return
	}
	if err := s.kv.Set(persist.KeyPages, data); err != nil {
		slog.Error("persist pages failed", "error", err)
	}
}

// persistUsersLocked writes the full user collection through to durable
// storage.
func (s *Store) persistUsersLocked() {
	data, err := json.Marshal(s.users)
	if err != nil {
		slog.Error("marshal users failed", "error", err)
		return
	}
	if err := s.kv.Set(persist.KeyUsers, data); err != nil {
		slog.Error("persist users failed", "error", err)
	}
}

// persistSessionLocked writes or clears the durable principal record.
func (s *Store) persistSessionLocked() {
	if s.currentUser == nil {
		if err := s.kv.Delete(persist.KeySession); err != nil {
			slog.Error("clear session failed", "error", err)
		}
		return
	}
	data, err := json.Marshal(s.currentUser)
	if err != nil {
		slog.Error("marshal session failed", "error", err)
		return
	}
	if err := s.kv.Set(persist.KeySession, data); err != nil {
		slog.Error("persist session failed", "error", err)
	}
}
