package service

import (
	"context"
	"todoportal/internal/domain/errors"
	"todoportal/internal/domain/models"
)

func (s *Service) ListClients(ctx context.Context, page int) (Page[models.UserView], error) {
	if _, err := s.requireRole(ctx, models.RoleAdmin); err != nil {
		return Page[models.UserView]{}, err
	}
	clients, err := s.users.ListClients(ctx)
	if err != nil {
		return Page[models.UserView]{}, err
	}
	views := make([]models.UserView, 0, len(clients))
	for _, c := range clients {
		views = append(views, c.View())
	}
	return Paginate(views, page, s.perPage), nil
}

// ClientTodos lists the todos of one client for the admin view.
func (s *Service) ClientTodos(ctx context.Context, clientID string, page int) (Page[models.Todo], error) {
	if _, err := s.requireRole(ctx, models.RoleAdmin); err != nil {
		return Page[models.Todo]{}, err
	}
	client, found, err := s.users.GetByID(ctx, clientID)
	if err != nil {
		return Page[models.Todo]{}, err
	}
	if !found || client.Role != models.RoleClient {
		return Page[models.Todo]{}, errors.ErrUserNotFound
	}
	todos, err := s.todos.ListByUser(ctx, clientID)
	if err != nil {
		return Page[models.Todo]{}, err
	}
	return Paginate(todos, page, s.perPage), nil
}

func (s *Service) AdminStats(ctx context.Context) (models.AdminStats, error) {
	if _, err := s.requireRole(ctx, models.RoleAdmin); err != nil {
		return models.AdminStats{}, err
	}
	clients, err := s.users.ListClients(ctx)
	if err != nil {
		return models.AdminStats{}, err
	}
	todos, err := s.todos.ListAll(ctx)
	if err != nil {
		return models.AdminStats{}, err
	}
	stats := models.AdminStats{TotalClients: len(clients), TotalTodos: len(todos)}
	for _, t := range todos {
		if t.Completed {
			stats.CompletedTodos++
		}
	}
	return stats, nil
}
