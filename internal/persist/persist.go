// Package persist provides durable, synchronous key-value storage for the
// document store. Each key maps to one JSON document on local disk; reads
// happen at store initialization, writes happen on every mutation.
package persist

// Well-known keys used by the document store.
const (
	KeyPages   = "pages"
	KeyUsers   = "users"
	KeySession = "session"
)

// KV is the minimal durable storage contract. Implementations must make
// Set visible to a later Get even across process restarts (Mem excepted,
// which exists for tests).
type KV interface {
	// Get returns the stored value for key and whether it exists.
	Get(key string) ([]byte, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}
