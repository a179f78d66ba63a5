package repository

import (
	"context"
	"sync"
	"todoportal/internal/domain/models"
)

// TodoRepository stores todos in the "todos" slot in insertion order.
// Deleting a user does not touch that user's todos.
type TodoRepository struct {
	store Store
	mu    sync.Mutex
}

func NewTodoRepository(store Store) *TodoRepository {
	return &TodoRepository{store: store}
}

func (r *TodoRepository) ListAll(ctx context.Context) ([]models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return loadAll[models.Todo](ctx, r.store, TodosKey)
}

func (r *TodoRepository) ListByUser(ctx context.Context, userID string) ([]models.Todo, error) {
	todos, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter(todos, func(t models.Todo) bool { return t.UserID == userID }), nil
}

func (r *TodoRepository) GetByID(ctx context.Context, id string) (models.Todo, bool, error) {
	todos, err := r.ListAll(ctx)
	if err != nil {
		return models.Todo{}, false, err
	}
	for _, t := range todos {
		if t.ID == id {
			return t, true, nil
		}
	}
	return models.Todo{}, false, nil
}

func (r *TodoRepository) Add(ctx context.Context, todo models.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	todos, err := loadAll[models.Todo](ctx, r.store, TodosKey)
	if err != nil {
		return err
	}
	return saveAll(ctx, r.store, TodosKey, append(todos, todo))
}

// Update replaces the record with todo.ID; a missing id is a silent no-op.
// Toggling completion is a read, a flip of Completed and an Update.
func (r *TodoRepository) Update(ctx context.Context, todo models.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	todos, err := loadAll[models.Todo](ctx, r.store, TodosKey)
	if err != nil {
		return err
	}
	for i := range todos {
		if todos[i].ID == todo.ID {
			todos[i] = todo
			return saveAll(ctx, r.store, TodosKey, todos)
		}
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	todos, err := loadAll[models.Todo](ctx, r.store, TodosKey)
	if err != nil {
		return err
	}
	kept := filter(todos, func(t models.Todo) bool { return t.ID != id })
	if len(kept) == len(todos) {
		return nil
	}
	return saveAll(ctx, r.store, TodosKey, kept)
}
