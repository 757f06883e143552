package store

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-memory KV used by tests and dry runs. WriteErr, when set,
// is returned from every Write so callers can exercise quota handling.
type Memory struct {
	mu       sync.Mutex
	values   map[string][]byte
	WriteErr error
}

// NewMemory creates an empty in-memory KV.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Read(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), val...), nil
}

func (m *Memory) Write(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Erase(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok
}

func (m *Memory) Keys(ctx context.Context) <-chan string {
	m.mu.Lock()
	keys := make([]string, 0, len(m.values))
	for key := range m.values {
		keys = append(keys, key)
	}
	m.mu.Unlock()
	sort.Strings(keys)

	out := make(chan string)
	go func() {
		defer close(out)
		for _, key := range keys {
			select {
			case out <- key:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
