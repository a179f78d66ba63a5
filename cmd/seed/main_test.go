package main

import (
	"context"
	"testing"
	"todoportal/internal/domain/errors"
	"todoportal/internal/domain/models"
	"todoportal/repository"
	storage "todoportal/repository/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAdmin(t *testing.T) {
	valid := models.RegisterRequest{
		Name: "Administrator", Email: "admin@example.com", Phone: "555-000-0000",
		Password: "Admin1234", ConfirmPassword: "Admin1234",
	}

	tests := []struct {
		name    string
		request models.RegisterRequest
		runs    int
		want    struct {
			created []bool
			err     error
			users   int
		}
	}{
		{
			name:    "first run creates the admin",
			request: valid,
			runs:    1,
			want: struct {
				created []bool
				err     error
				users   int
			}{created: []bool{true}, users: 1},
		},
		{
			name:    "second run is skipped",
			request: valid,
			runs:    2,
			want: struct {
				created []bool
				err     error
				users   int
			}{created: []bool{true, false}, users: 1},
		},
		{
			name: "weak password is rejected",
			request: models.RegisterRequest{
				Name: "Administrator", Email: "admin@example.com", Phone: "555-000-0000",
				Password: "weak", ConfirmPassword: "weak",
			},
			runs: 1,
			want: struct {
				created []bool
				err     error
				users   int
			}{created: []bool{false}, err: errors.ErrValidationFailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := storage.NewStorage()

			for i := 0; i < tt.runs; i++ {
				created, err := SeedAdmin(ctx, store, 4, tt.request)
				assert.Equal(t, tt.want.created[i], created)
				if tt.want.err != nil {
					assert.ErrorIs(t, err, tt.want.err)
				} else {
					require.NoError(t, err)
				}
			}

			users, err := repository.NewUserRepository(store).ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, users, tt.want.users)
			if tt.want.users > 0 {
				assert.Equal(t, models.RoleAdmin, users[0].Role)
			}
		})
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("SEED_ADMIN_EMAIL", "boss@example.com")
	assert.Equal(t, "boss@example.com", envOr("SEED_ADMIN_EMAIL", "admin@example.com"))
	assert.Equal(t, "fallback", envOr("SEED_UNSET_KEY_FOR_TEST", "fallback"))
}
