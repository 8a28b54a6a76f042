package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/pkg/tablelock"
)

// NopLogger логгер, который ничего не пишет
type NopLogger struct{}

func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}

// FixedClock провайдер времени с фиксированным значением
type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }

// InlineTx менеджер транзакций, вызывающий fn без транзакции.
// Если задана Err, возвращает её вместо результата fn (имитация ошибки commit).
type InlineTx struct {
	Err   error
	Calls int
}

func (t *InlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return t.Err
}

func (t *InlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.DoSerializable(ctx, fn)
}

// RecordingLocker локер, запоминающий запрошенные id
type RecordingLocker struct {
	mu       sync.Mutex
	Locked   [][]int64
	Released int
	Err      error
}

func (l *RecordingLocker) Lock(_ context.Context, ids ...int64) (tablelock.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return nil, l.Err
	}
	cp := make([]int64, len(ids))
	copy(cp, ids)
	l.Locked = append(l.Locked, cp)
	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			l.Released++
		})
	}, nil
}

// RecordingPublisher запоминает опубликованные события
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []domain.ReservationEvent
}

func (p *RecordingPublisher) Publish(_ context.Context, event domain.ReservationEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
}

// Types возвращает типы опубликованных событий по порядку
func (p *RecordingPublisher) Types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventType, len(p.Events))
	for i, e := range p.Events {
		out[i] = e.Type
	}
	return out
}

// Date короткая запись календарной даты
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// At момент времени в локальной зоне
func At(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.Local)
}

// RecordingMetrics считает вызовы доменных метрик
type RecordingMetrics struct {
	mu            sync.Mutex
	Conflicts     int
	StatusChanges []string
	Writes        map[string]int // "operation/result" -> count
}

func (m *RecordingMetrics) IncAvailabilityConflict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Conflicts++
}

func (m *RecordingMetrics) IncSlotSearch(string, bool) {}

func (m *RecordingMetrics) IncTableStatusChange(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatusChanges = append(m.StatusChanges, status)
}

func (m *RecordingMetrics) IncReservationWrite(operation, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Writes == nil {
		m.Writes = make(map[string]int)
	}
	m.Writes[operation+"/"+result]++
}

// WriteCount возвращает число записей operation с результатом result
func (m *RecordingMetrics) WriteCount(operation, result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Writes[operation+"/"+result]
}
