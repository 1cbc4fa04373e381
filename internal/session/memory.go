package session

import (
	"context"
	"sync"
)

// MemoryStorage, değerleri yalnızca süreç yaşadığı sürece tutar.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStorage, yeni bir MemoryStorage örneği oluşturur
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: map[string]string{}}
}

func (ms *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	v, ok := ms.data[key]
	return v, ok, nil
}

func (ms *MemoryStorage) Set(_ context.Context, key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.data[key] = value
	return nil
}
