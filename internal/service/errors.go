package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrForbidden = errors.New("forbidden: insufficient permissions")

// RepositoryError wraps a store failure with the user-facing action
// description the clinic UI shows, keeping the store's message verbatim.
type RepositoryError struct {
	Action string // e.g. "crear paciente"
	Err    error
}

func (e *RepositoryError) Error() string {
	return "Error al " + e.Action + ": " + e.Err.Error()
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

func repoError(action string, err error) *RepositoryError {
	return &RepositoryError{Action: action, Err: err}
}

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "datos no válidos: " + strings.Join(e.Fields, "; ")
}

type AuditEntry struct {
	UserID       uuid.UUID
	UserRole     string
	Action       string
	ResourceType string
	ResourceID   string
	IPAddress    string
	RequestID    string
}
