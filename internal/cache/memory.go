package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/rgehrsitz/mortgo/internal/domain"
)

// MemoryCache keeps schedules in process
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates an in-process cache whose entries expire after ttl
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(ttl, 2*ttl)}
}

func (m *MemoryCache) Backend() string { return BackendMemory }

func (m *MemoryCache) Get(_ context.Context, params domain.LoanParameters) (*domain.ScheduleResult, bool) {
	v, ok := m.store.Get(Key(params))
	if !ok {
		return nil, false
	}
	result, ok := v.(*domain.ScheduleResult)
	return result, ok
}

func (m *MemoryCache) Set(_ context.Context, params domain.LoanParameters, result *domain.ScheduleResult) error {
	m.store.SetDefault(Key(params), result)
	return nil
}

// Len reports the number of unexpired entries
func (m *MemoryCache) Len() int {
	return m.store.ItemCount()
}
