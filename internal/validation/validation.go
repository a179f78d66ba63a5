// Package validation holds the form rules shared by registration, login and
// profile editing. The predicates are pure; NewValidator exposes them as
// validator tags for request structs.
package validation

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/go-playground/validator"
)

const (
	TagEmail    = "todoemail"
	TagPhone    = "todophone"
	TagPassword = "todopassword"
	TagName     = "todoname"

	minPasswordLen = 8
	minNameLen     = 2

	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
)

// space is the whitespace class of form input, Unicode separators and the
// BOM included.
const space = `\s\v\p{Z}\x{FEFF}`

var (
	emailRe = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)
	// 123-456-7890, (123) 456-7890, +1 123.456.7890, 1234567890
	phoneRe = regexp.MustCompile(`^(\+\d{1,2}[` + space + `]?)?\(?\d{3}\)?[` + space + `.-]?\d{3}[` + space + `.-]?\d{4}$`)

	upperRe = regexp.MustCompile(`[A-Z]`)
	lowerRe = regexp.MustCompile(`[a-z]`)
	digitRe = regexp.MustCompile(`\d`)
)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// IsValidPassword requires at least 8 characters with an uppercase letter,
// a lowercase letter and a digit. Characters are counted in UTF-16 code
// units, so an emoji counts twice.
func IsValidPassword(password string) bool {
	return textLen(password) >= minPasswordLen &&
		upperRe.MatchString(password) &&
		lowerRe.MatchString(password) &&
		digitRe.MatchString(password)
}

// PasswordTooLong reports whether password cannot be hashed.
func PasswordTooLong(password string) bool {
	return len(password) > MaxPasswordBytes
}

func IsValidName(name string) bool {
	return textLen(Trim(name)) >= minNameLen
}

// Trim strips form whitespace from both ends of s.
func Trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func textLen(s string) int {
	return len(utf16.Encode([]rune(s)))
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Z, r)
}

// NewValidator returns a validator with the todo* tags registered. Field
// errors are reported under the json name of the field.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	rules := map[string]func(string) bool{
		TagEmail:    IsValidEmail,
		TagPhone:    IsValidPhone,
		TagPassword: IsValidPassword,
		TagName:     IsValidName,
	}
	for tag, rule := range rules {
		rule := rule
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return rule(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}
	return v
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
