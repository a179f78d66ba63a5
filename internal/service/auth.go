package service

import (
	"context"
	"todoportal/internal/domain/errors"
	"todoportal/internal/domain/models"
	"todoportal/internal/password"
	"todoportal/internal/validation"
)

// Register creates a new account. The new user is not signed in.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	fe := s.structErrors(req)
	if validation.PasswordTooLong(req.Password) {
		fe.add("password", msgPasswordTooLong)
	}
	if _, bad := fe["email"]; !bad {
		_, inUse, err := s.users.GetByEmail(ctx, req.Email)
		if err != nil {
			return models.User{}, err
		}
		if inUse {
			fe.add("email", msgEmailInUse)
		}
	}
	if err := fe.orNil(); err != nil {
		return models.User{}, err
	}

	hash, err := password.Hash(req.Password, s.bcryptCost)
	if err != nil {
		return models.User{}, err
	}
	role := models.RoleClient
	if req.Role != nil {
		role = *req.Role
	}
	user := models.User{
		ID:       s.newID(),
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Phone:    req.Phone,
		Role:     role,
	}
	if err := s.users.Add(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login checks the credentials and makes the user the current session.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	if err := s.structErrors(req).orNil(); err != nil {
		return models.User{}, err
	}
	user, found, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return models.User{}, err
	}
	if !found || !password.Verify(user.Password, req.Password) {
		return models.User{}, errors.ErrInvalidCredentials
	}
	if err := s.session.SetCurrent(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *Service) Logout(ctx context.Context) error {
	return s.session.Logout(ctx)
}

// UpdateProfile edits the signed-in user. The password fields are checked
// only when one of them is filled in. The session snapshot is replaced with
// the updated record.
func (s *Service) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error) {
	current, err := s.CurrentUser(ctx)
	if err != nil {
		return models.User{}, err
	}

	fe := s.structErrors(req)
	if _, bad := fe["email"]; !bad && req.Email != current.Email {
		_, inUse, err := s.users.GetByEmail(ctx, req.Email)
		if err != nil {
			return models.User{}, err
		}
		if inUse {
			fe.add("email", msgEmailInUse)
		}
	}

	if req.ChangesPassword() {
		switch {
		case req.CurrentPassword == "":
			fe.add("currentPassword", msgCurrentRequired)
		case !password.Verify(current.Password, req.CurrentPassword):
			fe.add("currentPassword", msgCurrentIncorrect)
		}
		switch {
		case req.NewPassword == "":
		case !validation.IsValidPassword(req.NewPassword):
			fe.add("newPassword", msgPasswordWeak)
		case validation.PasswordTooLong(req.NewPassword):
			fe.add("newPassword", msgPasswordTooLong)
		}
		if req.NewPassword != req.ConfirmNewPassword {
			fe.add("confirmNewPassword", msgPasswordMismatch)
		}
	}
	if err := fe.orNil(); err != nil {
		return models.User{}, err
	}

	updated := current
	updated.Name = req.Name
	updated.Email = req.Email
	updated.Phone = req.Phone
	if req.NewPassword != "" {
		hash, err := password.Hash(req.NewPassword, s.bcryptCost)
		if err != nil {
			return models.User{}, err
		}
		updated.Password = hash
	}

	if err := s.users.Update(ctx, updated); err != nil {
		return models.User{}, err
	}
	if err := s.session.SetCurrent(ctx, updated); err != nil {
		return models.User{}, err
	}
	return updated, nil
}
