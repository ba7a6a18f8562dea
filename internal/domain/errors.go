package domain

import (
	"errors"
	"fmt"
)

// Категории ошибок. Обработчики HTTP сопоставляют их со статусами.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")

	// ErrSubjectNotFound — токен валиден, но пользователя из sub уже нет.
	ErrSubjectNotFound = fmt.Errorf("%w: subject not found", ErrUnauthenticated)
)

// Error — ошибка бизнес-логики с сообщением для клиента.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

func Invalid(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: ErrForbidden, Message: message}
}

func Unauthenticated(message string) error {
	return &Error{Kind: ErrUnauthenticated, Message: message}
}
