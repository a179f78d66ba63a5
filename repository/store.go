// Package repository keeps users, todos and the active session in three
// named slots of a key-value Store. Every operation loads the whole slot,
// works on it in memory and writes the whole slot back.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
)

// Slot names. The layout is shared by every Store backend.
const (
	UsersKey       = "users"
	TodosKey       = "todos"
	CurrentUserKey = "currentUser"
)

// Store is the raw key-value backend. Get reports false for an absent key;
// Delete of an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// loadAll decodes a slot holding a JSON array. An absent or null slot is an
// empty collection.
func loadAll[T any](ctx context.Context, store Store, key string) ([]T, error) {
	const op = "repository.loadAll"
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%s(%s): %w", op, key, err)
	}
	items := []T{}
	if !ok || len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%s(%s): %w", op, key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func saveAll[T any](ctx context.Context, store Store, key string, items []T) error {
	const op = "repository.saveAll"
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%s(%s): %w", op, key, err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("%s(%s): %w", op, key, err)
	}
	return nil
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := []T{}
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
