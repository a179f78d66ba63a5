package service

import (
	"context"
	"todoportal/internal/domain/errors"
	"todoportal/internal/domain/models"
	"todoportal/internal/validation"
)

// CreateTodo adds a todo owned by the signed-in client.
func (s *Service) CreateTodo(ctx context.Context, req models.CreateTodoRequest) (models.Todo, error) {
	user, err := s.requireRole(ctx, models.RoleClient)
	if err != nil {
		return models.Todo{}, err
	}
	title := validation.Trim(req.Title)
	if title == "" {
		return models.Todo{}, FieldErrors{"title": msgTitleRequired}
	}
	todo := models.Todo{
		ID:        s.newID(),
		UserID:    user.ID,
		Title:     title,
		Completed: false,
		CreatedAt: s.now().UnixMilli(),
	}
	if err := s.todos.Add(ctx, todo); err != nil {
		return models.Todo{}, err
	}
	return todo, nil
}

func (s *Service) MyTodos(ctx context.Context) ([]models.Todo, error) {
	user, err := s.requireRole(ctx, models.RoleClient)
	if err != nil {
		return nil, err
	}
	return s.todos.ListByUser(ctx, user.ID)
}

// ToggleTodo flips Completed. Clients may toggle their own todos, admins any.
func (s *Service) ToggleTodo(ctx context.Context, id string) (models.Todo, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return models.Todo{}, err
	}
	todo, err := s.loadTodo(ctx, id)
	if err != nil {
		return models.Todo{}, err
	}
	if user.Role != models.RoleAdmin && todo.UserID != user.ID {
		return models.Todo{}, errors.ErrForbidden
	}
	todo.Completed = !todo.Completed
	if err := s.todos.Update(ctx, todo); err != nil {
		return models.Todo{}, err
	}
	return todo, nil
}

// DeleteTodo removes a todo of the signed-in user.
func (s *Service) DeleteTodo(ctx context.Context, id string) error {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return err
	}
	todo, err := s.loadTodo(ctx, id)
	if err != nil {
		return err
	}
	if todo.UserID != user.ID {
		return errors.ErrForbidden
	}
	return s.todos.Delete(ctx, id)
}

func (s *Service) loadTodo(ctx context.Context, id string) (models.Todo, error) {
	todo, found, err := s.todos.GetByID(ctx, id)
	if err != nil {
		return models.Todo{}, err
	}
	if !found {
		return models.Todo{}, errors.ErrTodoNotFound
	}
	return todo, nil
}

func (s *Service) ClientStats(ctx context.Context) (models.ClientStats, error) {
	todos, err := s.MyTodos(ctx)
	if err != nil {
		return models.ClientStats{}, err
	}
	stats := models.ClientStats{Total: len(todos)}
	for _, t := range todos {
		if t.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats, nil
}
