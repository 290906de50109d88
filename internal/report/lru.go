package report

import (
	"container/list"
	"sync"
)

// LRUStore is an in-memory LRU cache of result files that delegates to a
// backing Store on miss.
type LRUStore struct {
	mu    sync.Mutex
	cap   int
	back  Store
	order *list.List // of ResultFile, most recent at front
	items map[string]*list.Element
}

// NewLRUStore creates an LRU cache with the given capacity that delegates
// to back on cache misses. Capacity must be >= 1.
func NewLRUStore(cap int, back Store) *LRUStore {
	if cap < 1 {
		cap = 1
	}
	return &LRUStore{
		cap:   cap,
		back:  back,
		order: list.New(),
		items: make(map[string]*list.Element, cap),
	}
}

// Save writes through to the backing store and caches the file on success.
func (s *LRUStore) Save(file ResultFile) (string, error) {
	path, err := s.back.Save(file)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.put(file)
	s.mu.Unlock()
	return path, nil
}

// Load checks the cache first. On miss, loads from the backing store
// and promotes the file into the cache.
func (s *LRUStore) Load(name string) (ResultFile, error) {
	s.mu.Lock()
	if el, ok := s.items[name]; ok {
		s.order.MoveToFront(el)
		f := el.Value.(ResultFile)
		s.mu.Unlock()
		return f, nil
	}
	s.mu.Unlock()

	file, err := s.back.Load(name)
	if err != nil {
		return ResultFile{}, err
	}

	s.mu.Lock()
	s.put(file)
	s.mu.Unlock()
	return file, nil
}

// Len returns the number of cached files.
func (s *LRUStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// put inserts or refreshes file and evicts the least recent entry when over
// capacity. Callers hold s.mu.
func (s *LRUStore) put(file ResultFile) {
	if el, ok := s.items[file.Name]; ok {
		el.Value = file
		s.order.MoveToFront(el)
		return
	}
	s.items[file.Name] = s.order.PushFront(file)
	if s.order.Len() > s.cap {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.items, oldest.Value.(ResultFile).Name)
	}
}
