package tablelock

import (
	"context"
	"errors"
	"sort"
	"time"
)

// ErrLockTimeout возвращается, когда блокировку не удалось взять до отмены контекста
var ErrLockTimeout = errors.New("tablelock: lock acquisition timed out")

// UnlockFunc освобождает взятые блокировки. Повторный вызов безопасен.
type UnlockFunc func()

// Locker взаимное исключение писателей по id стола
type Locker interface {
	Lock(ctx context.Context, ids ...int64) (UnlockFunc, error)
}

type timeoutLocker struct {
	next    Locker
	timeout time.Duration
}

// WithTimeout ограничивает ожидание блокировки. timeout <= 0 - ждать до отмены ctx.
func WithTimeout(next Locker, timeout time.Duration) Locker {
	if timeout <= 0 {
		return next
	}
	return &timeoutLocker{next: next, timeout: timeout}
}

func (l *timeoutLocker) Lock(ctx context.Context, ids ...int64) (UnlockFunc, error) {
	lockCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	return l.next.Lock(lockCtx, ids...)
}

// normalize сортирует и убирает дубликаты, чтобы все писатели брали блокировки в одном порядке
func normalize(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func lockTimeout(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	return ErrLockTimeout
}
