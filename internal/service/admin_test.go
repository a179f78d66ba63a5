package service

import (
	"context"
	"fmt"
	"testing"
	"todoportal/internal/domain/errors"
	"todoportal/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminViews(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	var firstClient models.User
	for i := 0; i < 12; i++ {
		u := env.registerAndLogin(t, fmt.Sprintf("client%02d@example.com", i), models.RoleClient)
		if i == 0 {
			firstClient = u
			for _, title := range []string{"one", "two"} {
				_, err := env.svc.CreateTodo(ctx, models.CreateTodoRequest{Title: title})
				require.NoError(t, err)
			}
			mine, err := env.svc.MyTodos(ctx)
			require.NoError(t, err)
			_, err = env.svc.ToggleTodo(ctx, mine[0].ID)
			require.NoError(t, err)
		}
	}
	admin := env.registerAndLogin(t, "admin@example.com", models.RoleAdmin)

	t.Run("clients are paginated", func(t *testing.T) {
		page1, err := env.svc.ListClients(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, page1.Items, 10)
		assert.Equal(t, 12, page1.TotalItems)
		assert.Equal(t, 2, page1.TotalPages)
		assert.Equal(t, firstClient.ID, page1.Items[0].ID)

		page2, err := env.svc.ListClients(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, page2.Items, 2)
		for _, c := range append(page1.Items, page2.Items...) {
			assert.NotEqual(t, admin.ID, c.ID)
		}
	})

	t.Run("client todos", func(t *testing.T) {
		page, err := env.svc.ClientTodos(ctx, firstClient.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, page.TotalItems)
		assert.Equal(t, "one", page.Items[0].Title)
	})

	t.Run("unknown or admin id", func(t *testing.T) {
		_, err := env.svc.ClientTodos(ctx, "missing", 1)
		assert.ErrorIs(t, err, errors.ErrUserNotFound)
		_, err = env.svc.ClientTodos(ctx, admin.ID, 1)
		assert.ErrorIs(t, err, errors.ErrUserNotFound)
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := env.svc.AdminStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.AdminStats{TotalClients: 12, TotalTodos: 2, CompletedTodos: 1}, stats)
	})
}

func TestAdminViewsForbiddenForClients(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.registerAndLogin(t, "client@example.com", models.RoleClient)

	_, err := env.svc.ListClients(ctx, 1)
	assert.ErrorIs(t, err, errors.ErrForbidden)
	_, err = env.svc.ClientTodos(ctx, "x", 1)
	assert.ErrorIs(t, err, errors.ErrForbidden)
	_, err = env.svc.AdminStats(ctx)
	assert.ErrorIs(t, err, errors.ErrForbidden)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name    string
		page    int
		perPage int
		want    Page[int]
	}{
		{
			name: "first page", page: 1, perPage: 3,
			want: Page[int]{Items: []int{1, 2, 3}, Page: 1, PerPage: 3, TotalItems: 7, TotalPages: 3},
		},
		{
			name: "last partial page", page: 3, perPage: 3,
			want: Page[int]{Items: []int{7}, Page: 3, PerPage: 3, TotalItems: 7, TotalPages: 3},
		},
		{
			name: "past the end", page: 4, perPage: 3,
			want: Page[int]{Items: []int{}, Page: 4, PerPage: 3, TotalItems: 7, TotalPages: 3},
		},
		{
			name: "page below one", page: 0, perPage: 5,
			want: Page[int]{Items: []int{1, 2, 3, 4, 5}, Page: 1, PerPage: 5, TotalItems: 7, TotalPages: 2},
		},
		{
			name: "default page size", page: 1, perPage: 0,
			want: Page[int]{Items: items, Page: 1, PerPage: DefaultPerPage, TotalItems: 7, TotalPages: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paginate(items, tt.page, tt.perPage))
		})
	}

	empty := Paginate([]string{}, 1, 10)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Empty(t, empty.Items)
}
