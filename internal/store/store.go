// Package store holds the three flat record collections: expenses, transit
// trips and work time logs. Each store owns its in-memory slice exclusively
// and writes it back to the key-value surface on every mutation, mirroring
// the synchronous persistence contract. Stores carry no business logic
// beyond storage and range/category filters; derived statistics live in the
// budget package.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"kuripot/internal/kv"
)

func newID() string {
	return uuid.NewString()
}

func loadSlice[T any](ctx context.Context, s kv.Store, key string) ([]T, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

func saveSlice[T any](ctx context.Context, s kv.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
