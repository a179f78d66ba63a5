package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"todoportal/internal/domain/models"
)

// Session keeps a copy of the signed-in user in the "currentUser" slot.
// The copy is not refreshed when the stored user changes; callers re-set it.
type Session struct {
	store Store
}

func NewSession(store Store) *Session {
	return &Session{store: store}
}

func (s *Session) SetCurrent(ctx context.Context, user models.User) error {
	const op = "repository.Session.SetCurrent"
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.store.Set(ctx, CurrentUserKey, raw); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Session) GetCurrent(ctx context.Context) (models.User, bool, error) {
	const op = "repository.Session.GetCurrent"
	raw, ok, err := s.store.Get(ctx, CurrentUserKey)
	if err != nil {
		return models.User{}, false, fmt.Errorf("%s: %w", op, err)
	}
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return models.User{}, false, nil
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return models.User{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return user, true, nil
}

func (s *Session) Logout(ctx context.Context) error {
	const op = "repository.Session.Logout"
	if err := s.store.Delete(ctx, CurrentUserKey); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Session) IsAuthenticated(ctx context.Context) (bool, error) {
	_, ok, err := s.GetCurrent(ctx)
	return ok, err
}

func (s *Session) IsAdmin(ctx context.Context) (bool, error) {
	return s.hasRole(ctx, models.RoleAdmin)
}

func (s *Session) IsClient(ctx context.Context) (bool, error) {
	return s.hasRole(ctx, models.RoleClient)
}

func (s *Session) hasRole(ctx context.Context, role models.Role) (bool, error) {
	user, ok, err := s.GetCurrent(ctx)
	if err != nil || !ok {
		return false, err
	}
	return user.Role == role, nil
}
