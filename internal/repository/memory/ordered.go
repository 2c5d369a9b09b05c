package memory

import "sync"

// ordered is a keyed store that remembers insertion order.
type ordered[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	keys  []string
}

func newOrdered[T any]() *ordered[T] {
	return &ordered[T]{items: make(map[string]T)}
}

func (s *ordered[T]) insert(key string, v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; ok {
		return false
	}
	s.items[key] = v
	s.keys = append(s.keys, key)
	return true
}

func (s *ordered[T]) get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

func (s *ordered[T]) replace(key string, v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; !ok {
		return false
	}
	s.items[key] = v
	return true
}

func (s *ordered[T]) remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; !ok {
		return false
	}
	delete(s.items, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return true
}

func (s *ordered[T]) all() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.items[k])
	}
	return out
}
