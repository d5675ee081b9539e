package user

import (
	"strings"
	"unicode/utf8"

	"taskboard/internal/domain"
)

const maxNameLen = 255

// ValidateName 纯校验，无 I/O；唯一性交给存储层约束
func ValidateName(name string) []domain.FieldError {
	var errs []domain.FieldError
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "Name is required"})
	}
	if trimmed != "" && utf8.RuneCountInString(trimmed) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "Name must be less than 255 characters"})
	}
	return errs
}
