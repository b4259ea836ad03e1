package persist

import "sync"

// Mem is an in-memory KV used by tests. It satisfies the same contract as
// Dir minus durability.
type Mem struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMem returns an empty in-memory KV.
func NewMem() *Mem {
	return &Mem{data: make(map[string][]byte)}
}

func (m *Mem) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *Mem) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *Mem) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
