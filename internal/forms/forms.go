// Package forms validates login and registration input before any
// request is issued.
package forms

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wbonfim/DeliveryApp/internal/models"
)

var (
	phonePattern = regexp.MustCompile(`^\(\d{2}\)\s\d{4,5}-\d{4}$`)
	phoneDigits  = regexp.MustCompile(`^(\d{2})(\d{4,5})(\d{4})`)
	nonDigit     = regexp.MustCompile(`\D`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("br_phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// FieldErrors maps a form field to its first failing rule.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fe[k])
	}
	return strings.Join(msgs, "; ")
}

type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

// Validate returns nil when the form may be submitted.
func (f LoginForm) Validate() FieldErrors {
	return check(f)
}

func (f LoginForm) Credentials() models.Credentials {
	return models.Credentials{Email: strings.TrimSpace(f.Email), Password: f.Password}
}

type RegisterForm struct {
	FullName        string `form:"full_name" validate:"required"`
	Username        string `form:"username" validate:"omitempty,min=3,max=80"`
	Email           string `form:"email" validate:"required,email"`
	Phone           string `form:"phone" validate:"required,br_phone"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"eqfield=Password"`
}

func (f RegisterForm) Validate() FieldErrors {
	return check(f)
}

// Request builds the registration body. The username falls back to the
// local part of the email.
func (f RegisterForm) Request() models.RegisterRequest {
	email := strings.TrimSpace(f.Email)
	username := strings.TrimSpace(f.Username)
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}
	return models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: f.Password,
		Phone:    f.Phone,
		FullName: strings.TrimSpace(f.FullName),
		UserType: "customer",
	}
}

// FormatPhone turns up to 11 digits into "(DD) DDDD-DDDD" or
// "(DD) DDDDD-DDDD". Longer input is returned unchanged; shorter input
// is returned as bare digits.
func FormatPhone(value string) string {
	digits := nonDigit.ReplaceAllString(value, "")
	if len(digits) > 11 {
		return value
	}
	return phoneDigits.ReplaceAllString(digits, "($1) $2-$3")
}

func check(form any) FieldErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"form": err.Error()}
	}
	out := make(FieldErrors, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = fieldError(fe)
	}
	return out
}

func fieldError(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "br_phone":
		return field + " must look like (11) 99999-9999"
	case "eqfield":
		return "passwords do not match"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
