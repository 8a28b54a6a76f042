package tablelock

import (
	"context"
	"sync"
)

// LocalLocker блокировки столов внутри одного процесса
type LocalLocker struct {
	mu    sync.Mutex
	slots map[int64]chan struct{}
}

// NewLocalLocker создает локальный локер
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[int64]chan struct{})}
}

// Lock блокирует столы ids. Ждет, пока блокировки не освободятся или не истечет ctx.
func (l *LocalLocker) Lock(ctx context.Context, ids ...int64) (UnlockFunc, error) {
	keys := normalize(ids)
	acquired := make([]chan struct{}, 0, len(keys))

	release := func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			<-acquired[i]
		}
	}

	for _, id := range keys {
		slot := l.slot(id)
		select {
		case slot <- struct{}{}:
			acquired = append(acquired, slot)
		case <-ctx.Done():
			release()
			return nil, lockTimeout(ctx)
		}
	}

	var once sync.Once
	return func() { once.Do(release) }, nil
}

func (l *LocalLocker) slot(id int64) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[id]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[id] = s
	}
	return s
}
