package domain

import "errors"

// Категории ошибок. Ошибки пакетов оборачивают одну из них,
// чтобы транспорт мог выбрать код ответа через errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")
)

// ErrInvalidTransition недопустимый переход статуса бронирования
var ErrInvalidTransition = Conflict("domain: invalid reservation status transition")

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// Validation создает sentinel-ошибку категории ErrValidation
func Validation(msg string) error { return &kindError{kind: ErrValidation, msg: msg} }

// Conflict создает sentinel-ошибку категории ErrConflict
func Conflict(msg string) error { return &kindError{kind: ErrConflict, msg: msg} }

// NotFound создает sentinel-ошибку категории ErrNotFound
func NotFound(msg string) error { return &kindError{kind: ErrNotFound, msg: msg} }

// Storage создает sentinel-ошибку категории ErrStorage
func Storage(msg string) error { return &kindError{kind: ErrStorage, msg: msg} }

// Outcome метка результата операции для метрик
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "invalid"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}

// HasKind returns true if err already belongs to one of the categories
func HasKind(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrStorage)
}
