package storage

// MemoryStore is an in-memory Store used in tests.
type MemoryStore struct {
	values map[string]string
}

func NewMemory() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
