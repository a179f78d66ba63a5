package service

import (
	"sort"
	"strings"
	"todoportal/internal/domain/errors"
	"todoportal/internal/validation"

	"github.com/go-playground/validator"
)

// FieldErrors maps a request field (json name) to a user-facing message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return errors.ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (e FieldErrors) Unwrap() error { return errors.ErrValidationFailed }

// add keeps the first message for a field.
func (e FieldErrors) add(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

// EmailInUse reports whether the only problem with the email is that
// another account already has it.
func (e FieldErrors) EmailInUse() bool {
	return e["email"] == msgEmailInUse
}

func (e FieldErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

const (
	msgNameRequired      = "имя обязательно"
	msgNameInvalid       = "имя должно содержать не менее 2 символов"
	msgEmailRequired     = "email обязателен"
	msgEmailInvalid      = "некорректный формат email"
	msgEmailInUse        = "email уже используется другим пользователем"
	msgPhoneRequired     = "телефон обязателен"
	msgPhoneInvalid      = "некорректный формат номера телефона"
	msgPasswordRequired  = "пароль обязателен"
	msgPasswordWeak      = "пароль должен содержать не менее 8 символов, заглавную и строчную букву и цифру"
	msgPasswordTooLong   = "пароль не должен превышать 72 байта"
	msgPasswordMismatch  = "пароли не совпадают"
	msgCurrentRequired   = "для смены пароля укажите текущий пароль"
	msgCurrentIncorrect  = "текущий пароль указан неверно"
	msgTitleRequired     = "название задачи обязательно"
	msgRoleInvalid       = "недопустимая роль пользователя"
	msgFieldInvalidValue = "некорректное значение"
)

var requiredMessages = map[string]string{
	"name":     msgNameRequired,
	"email":    msgEmailRequired,
	"phone":    msgPhoneRequired,
	"password": msgPasswordRequired,
}

var tagMessages = map[string]string{
	validation.TagName:     msgNameInvalid,
	validation.TagEmail:    msgEmailInvalid,
	validation.TagPhone:    msgPhoneInvalid,
	validation.TagPassword: msgPasswordWeak,
	"eqfield":              msgPasswordMismatch,
}

// structErrors runs the validator over req and converts its findings.
func (s *Service) structErrors(req any) FieldErrors {
	fe := FieldErrors{}
	err := s.validate.Struct(req)
	if err == nil {
		return fe
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fe.add("general", err.Error())
		return fe
	}
	for _, v := range verrs {
		fe.add(v.Field(), messageFor(v.Field(), v.Tag()))
	}
	return fe
}

func messageFor(field, tag string) string {
	if field == "role" {
		return msgRoleInvalid
	}
	if tag == "required" {
		if msg, ok := requiredMessages[field]; ok {
			return msg
		}
	}
	if msg, ok := tagMessages[tag]; ok {
		return msg
	}
	return msgFieldInvalidValue
}
