package validation

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/eneca-dev/enecawork-backend/pkg/constants"
)

const MinPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"custom_email":      isGoodEmailFormat,
		"password_strength": isStrongPassword,
		"assignment_status": isAssignmentStatus,
		"team":              isTeam,
		"category":          isCategory,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return IsEmail(fl.Field().String())
}

func isStrongPassword(fl validator.FieldLevel) bool {
	return PasswordProblem(fl.Field().String()) == ""
}

func isAssignmentStatus(fl validator.FieldLevel) bool {
	return constants.IsAssignmentStatus(fl.Field().String())
}

func isTeam(fl validator.FieldLevel) bool {
	return constants.IsTeam(fl.Field().String())
}

func isCategory(fl validator.FieldLevel) bool {
	return constants.IsCategory(fl.Field().String())
}

func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// PasswordProblem возвращает текст нарушения политики паролей или пустую строку.
func PasswordProblem(password string) string {
	if len([]rune(password)) < MinPasswordLength {
		return "Password must contain at least 6 characters"
	}
	var hasDigit, hasLetter bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLetter(r):
			hasLetter = true
		}
	}
	if !hasDigit {
		return "Password must contain at least one digit"
	}
	if !hasLetter {
		return "Password must contain at least one letter"
	}
	return ""
}
