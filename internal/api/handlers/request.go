package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/pkg/types"
)

// ErrMissingParam возвращается, когда обязательный параметр не передан
var ErrMissingParam = errors.New("missing required parameter")

// PathID читает положительный int64 из пути
func PathID(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

// QueryDate читает обязательную дату YYYY-MM-DD
func QueryDate(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return ParseDate(raw)
}

// ParseDate парсит дату YYYY-MM-DD
func ParseDate(raw string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %v", raw, err)
	}
	return date, nil
}

// QueryTime читает время HH:MM. Пустое значение возвращается как есть.
func QueryTime(r *http.Request, name string) (types.TimeString, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return "", nil
	}
	return types.NewTimeStringFromString(raw)
}

// QueryInt читает обязательное целое
func QueryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

// QueryOptionalInt читает необязательное целое (nil, если не передано)
func QueryOptionalInt(r *http.Request, name string) (*int, error) {
	if r.URL.Query().Get(name) == "" {
		return nil, nil
	}
	v, err := QueryInt(r, name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// QueryOptionalID читает необязательный положительный int64
func QueryOptionalID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return &id, nil
}
