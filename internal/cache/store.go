package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Store — кэш с TTL. Чтение после истечения срока ведёт себя как промах.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// GetJSON возвращает (true, nil) при попадании; при промахе dest не трогается.
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// memoryStore — in-memory реализация с подменяемыми часами. Используется
// без Redis и в тестах TTL-поведения.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() Store {
	return NewMemoryStoreWithClock(time.Now)
}

func NewMemoryStoreWithClock(now func() time.Time) Store {
	return &memoryStore{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

func (s *memoryStore) get(key string) ([]byte, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}
	return entry.data, true
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	if data, ok := s.get(key); ok {
		return string(data), nil
	}
	return "", nil
}

func (s *memoryStore) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return err
		}
		data = encoded
	}

	var expiresAt time.Time
	if expiration > 0 {
		expiresAt = s.now().Add(expiration)
	}

	s.mu.Lock()
	s.entries[key] = memoryEntry{data: data, expiresAt: expiresAt}
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := s.get(key)
	return ok, nil
}

func (s *memoryStore) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	data, ok := s.get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *memoryStore) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, data, expiration)
}
