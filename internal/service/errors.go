package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"bukubesar-api/internal/repository"
	"bukubesar-api/internal/utils"
)

var (
	ErrJurnalNotFound     = errors.New("Jurnal not found")
	ErrInvalidCredentials = errors.New("Login failed, invalid credentials")
	ErrInvalidToken       = errors.New("Invalid or expired token")
	ErrTokenRevoked       = errors.New("Token has been revoked")
)

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func invalidReference(field string) string {
	return fmt.Sprintf("The selected %s is invalid.", field)
}

// validate runs struct tags and returns a *ValidationError on failure.
func validate(req interface{}) error {
	if fields := utils.ValidateStruct(req); fields != nil {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// referenceError turns a foreign key violation on write into a field error.
func referenceError(err error, field string) error {
	if errors.Is(err, repository.ErrForeignKey) {
		return fieldError(field, invalidReference(field))
	}
	return err
}
