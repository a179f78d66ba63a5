package service

import (
	"context"
	"strings"
	"testing"
	"todoportal/internal/domain/errors"
	"todoportal/internal/domain/models"
	"todoportal/internal/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile(t *testing.T) {
	longPassword := "Abcdefg1" + strings.Repeat("x", 70)
	base := models.UpdateProfileRequest{
		Name:  "Renamed",
		Email: "me@example.com",
		Phone: "(123) 456-7890",
	}
	withPasswords := func(current, next, confirm string) models.UpdateProfileRequest {
		r := base
		r.CurrentPassword = current
		r.NewPassword = next
		r.ConfirmNewPassword = confirm
		return r
	}
	withEmail := func(email string) models.UpdateProfileRequest {
		r := base
		r.Email = email
		return r
	}

	tests := []struct {
		name    string
		request models.UpdateProfileRequest
		want    struct {
			fields      []string
			newPassword string
		}
	}{
		{
			name:    "details only",
			request: base,
		},
		{
			name:    "change password",
			request: withPasswords("Abcdefg1", "Newpass12", "Newpass12"),
			want: struct {
				fields      []string
				newPassword string
			}{newPassword: "Newpass12"},
		},
		{
			name:    "current password missing",
			request: withPasswords("", "Newpass12", "Newpass12"),
			want: struct {
				fields      []string
				newPassword string
			}{fields: []string{"currentPassword"}},
		},
		{
			name:    "current password wrong",
			request: withPasswords("Wrong1234", "Newpass12", "Newpass12"),
			want: struct {
				fields      []string
				newPassword string
			}{fields: []string{"currentPassword"}},
		},
		{
			name:    "new password weak and unconfirmed",
			request: withPasswords("Abcdefg1", "weak", "other"),
			want: struct {
				fields      []string
				newPassword string
			}{fields: []string{"newPassword", "confirmNewPassword"}},
		},
		{
			name:    "new password longer than bcrypt accepts",
			request: withPasswords("Abcdefg1", longPassword, longPassword),
			want: struct {
				fields      []string
				newPassword string
			}{fields: []string{"newPassword"}},
		},
		{
			name:    "only current password filled keeps password",
			request: withPasswords("Abcdefg1", "", ""),
		},
		{
			name:    "email taken by another user",
			request: withEmail("other@example.com"),
			want: struct {
				fields      []string
				newPassword string
			}{fields: []string{"email"}},
		},
		{
			name:    "invalid phone",
			request: models.UpdateProfileRequest{Name: "Renamed", Email: "me@example.com", Phone: "12"},
			want: struct {
				fields      []string
				newPassword string
			}{fields: []string{"phone"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			env := newTestEnv(t)
			_, err := env.svc.Register(ctx, validRegister("other@example.com", models.RoleClient))
			require.NoError(t, err)
			before := env.registerAndLogin(t, "me@example.com", models.RoleClient)

			updated, err := env.svc.UpdateProfile(ctx, tt.request)

			if len(tt.want.fields) > 0 {
				fe := fieldErrors(t, err)
				got := []string{}
				for f := range fe {
					got = append(got, f)
				}
				assert.ElementsMatch(t, tt.want.fields, got)

				stored, _, err := env.users.GetByID(ctx, before.ID)
				require.NoError(t, err)
				assert.Equal(t, before, stored)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.request.Name, updated.Name)
			assert.Equal(t, tt.request.Email, updated.Email)
			assert.Equal(t, tt.request.Phone, updated.Phone)
			assert.Equal(t, before.ID, updated.ID)
			assert.Equal(t, before.Role, updated.Role)
			if tt.want.newPassword != "" {
				assert.True(t, password.Verify(updated.Password, tt.want.newPassword))
			} else {
				assert.Equal(t, before.Password, updated.Password)
			}

			stored, _, err := env.users.GetByID(ctx, before.ID)
			require.NoError(t, err)
			assert.Equal(t, updated, stored)

			current, err := env.svc.CurrentUser(ctx)
			require.NoError(t, err)
			assert.Equal(t, updated, current, "session snapshot must be refreshed")
		})
	}
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.UpdateProfile(context.Background(), models.UpdateProfileRequest{
		Name: "Someone", Email: "a@b.com", Phone: "1234567890",
	})

	assert.ErrorIs(t, err, errors.ErrNotAuthenticated)
}
