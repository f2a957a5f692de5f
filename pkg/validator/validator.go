package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate проверяет struct-теги `validate` и возвращает map поле -> тег
// nil означает, что ошибок нет
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return map[string]string{"_": err.Error()}
	}

	result := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		result[fe.Field()] = fe.Tag()
	}
	return result
}

// Var проверяет одиночное значение по тегу, например "email"
func Var(value interface{}, tag string) error {
	return validate.Var(value, tag)
}

// Describe собирает ошибки в стабильную строку для логов и сообщений
func Describe(errs map[string]string) string {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, errs[field]))
	}
	return strings.Join(parts, ", ")
}
