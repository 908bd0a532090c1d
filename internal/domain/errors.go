package domain

import "errors"

// Виды доменных ошибок. Проверяются через errors.Is.
var (
	// ErrNotFound возвращается когда сущность не найдена
	ErrNotFound = errors.New("not found")

	// ErrConflict возвращается когда операция нарушает правило членства
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized возвращается при неудачной аутентификации
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken возвращается когда JWT токен невалиден
	ErrInvalidToken = errors.New("invalid token")
)

// Error это доменная ошибка с фиксированным текстом и видом
type Error struct {
	kind    error
	message string
}

// Error возвращает текст ошибки без префиксов
func (e *Error) Error() string {
	return e.message
}

// Unwrap возвращает вид ошибки (ErrNotFound или ErrConflict)
func (e *Error) Unwrap() error {
	return e.kind
}

// Ошибки, которые сервисный слой возвращает клиентам. Тексты фиксированы.
var (
	ErrUserNotFound    = &Error{kind: ErrNotFound, message: "User not found"}
	ErrProjectNotFound = &Error{kind: ErrNotFound, message: "Project not found"}
	ErrTaskNotFound    = &Error{kind: ErrNotFound, message: "Task not found"}

	ErrUserAlreadyInProject = &Error{kind: ErrConflict, message: "User is already part of the project"}
	ErrUserNotInProject     = &Error{kind: ErrConflict, message: "User is not part of the project"}
)

// ErrorCode представляет коды ошибок API
type ErrorCode string

// Коды ошибок API
const (
	CodeNotFound     ErrorCode = "NOT_FOUND"      // Сущность не найдена
	CodeConflict     ErrorCode = "CONFLICT"       // Нарушено правило членства
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"   // Нет или неверный токен
	CodeBadRequest   ErrorCode = "BAD_REQUEST"    // Невалидный запрос
	CodeInternal     ErrorCode = "INTERNAL_ERROR" // Всё остальное
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken):
		return CodeUnauthorized
	default:
		return CodeInternal
	}
}
