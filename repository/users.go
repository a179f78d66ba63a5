package repository

import (
	"context"
	"sync"
	"todoportal/internal/domain/models"
)

// UserRepository stores users in the "users" slot in insertion order.
// It does not validate records or enforce email uniqueness; callers do.
type UserRepository struct {
	store Store
	mu    sync.Mutex
}

func NewUserRepository(store Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return loadAll[models.User](ctx, r.store, UsersKey)
}

func (r *UserRepository) ListClients(ctx context.Context) ([]models.User, error) {
	users, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter(users, func(u models.User) bool { return u.Role == models.RoleClient }), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, bool, error) {
	return r.find(ctx, func(u models.User) bool { return u.ID == id })
}

// GetByEmail returns the first user whose email equals email exactly.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (models.User, bool, error) {
	return r.find(ctx, func(u models.User) bool { return u.Email == email })
}

func (r *UserRepository) Add(ctx context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := loadAll[models.User](ctx, r.store, UsersKey)
	if err != nil {
		return err
	}
	return saveAll(ctx, r.store, UsersKey, append(users, user))
}

// Update replaces the record with user.ID. Nothing is written when no
// record matches.
func (r *UserRepository) Update(ctx context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := loadAll[models.User](ctx, r.store, UsersKey)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			return saveAll(ctx, r.store, UsersKey, users)
		}
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := loadAll[models.User](ctx, r.store, UsersKey)
	if err != nil {
		return err
	}
	kept := filter(users, func(u models.User) bool { return u.ID != id })
	if len(kept) == len(users) {
		return nil
	}
	return saveAll(ctx, r.store, UsersKey, kept)
}

func (r *UserRepository) find(ctx context.Context, match func(models.User) bool) (models.User, bool, error) {
	users, err := r.ListAll(ctx)
	if err != nil {
		return models.User{}, false, err
	}
	for _, u := range users {
		if match(u) {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}
