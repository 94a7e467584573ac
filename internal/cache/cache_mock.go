package cache

import (
	"context"

	"github.com/quantmind-br/locrank/internal/db"
)

// MockStore is a mock implementation of Store for testing
type MockStore struct {
	FindByCacheKeyFunc func(ctx context.Context, key string) (*db.Analysis, error)
	CreateFunc         func(ctx context.Context, a *db.Analysis) error
}

// FindByCacheKey implements Store.FindByCacheKey
func (m *MockStore) FindByCacheKey(ctx context.Context, key string) (*db.Analysis, error) {
	if m.FindByCacheKeyFunc != nil {
		return m.FindByCacheKeyFunc(ctx, key)
	}
	return nil, db.ErrNotFound
}

// Create implements Store.Create
func (m *MockStore) Create(ctx context.Context, a *db.Analysis) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	return nil
}
