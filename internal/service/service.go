// Package service implements the form handlers of the todo portal: it
// validates input, applies the uniqueness and ownership rules and then calls
// the repositories. Repositories never validate on their own.
package service

import (
	"context"
	"time"
	"todoportal/internal/domain/errors"
	"todoportal/internal/domain/models"
	"todoportal/internal/validation"

	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	ListAll(ctx context.Context) ([]models.User, error)
	ListClients(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (models.User, bool, error)
	GetByEmail(ctx context.Context, email string) (models.User, bool, error)
	Add(ctx context.Context, user models.User) error
	Update(ctx context.Context, user models.User) error
}

type TodoRepository interface {
	ListAll(ctx context.Context) ([]models.Todo, error)
	ListByUser(ctx context.Context, userID string) ([]models.Todo, error)
	GetByID(ctx context.Context, id string) (models.Todo, bool, error)
	Add(ctx context.Context, todo models.Todo) error
	Update(ctx context.Context, todo models.Todo) error
	Delete(ctx context.Context, id string) error
}

type SessionStore interface {
	SetCurrent(ctx context.Context, user models.User) error
	GetCurrent(ctx context.Context) (models.User, bool, error)
	Logout(ctx context.Context) error
}

type Service struct {
	users      UserRepository
	todos      TodoRepository
	session    SessionStore
	validate   *validator.Validate
	newID      func() string
	now        func() time.Time
	bcryptCost int
	perPage    int
}

type Option func(*Service)

func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.bcryptCost = cost }
}

func WithPerPage(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.perPage = n
		}
	}
}

func New(users UserRepository, todos TodoRepository, session SessionStore, opts ...Option) *Service {
	s := &Service{
		users:      users,
		todos:      todos,
		session:    session,
		validate:   validation.NewValidator(),
		newID:      uuid.NewString,
		now:        time.Now,
		bcryptCost: bcrypt.DefaultCost,
		perPage:    DefaultPerPage,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CurrentUser returns the session snapshot or ErrNotAuthenticated.
func (s *Service) CurrentUser(ctx context.Context) (models.User, error) {
	user, ok, err := s.session.GetCurrent(ctx)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return models.User{}, errors.ErrNotAuthenticated
	}
	return user, nil
}

func (s *Service) requireRole(ctx context.Context, role models.Role) (models.User, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return models.User{}, err
	}
	if user.Role != role {
		return models.User{}, errors.ErrForbidden
	}
	return user, nil
}
