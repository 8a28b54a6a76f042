// Package testutil содержит in-memory реализации репозиториев и вспомогательные
// заглушки для тестов сервисов и use case.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/pkg/types"
)

var (
	errTableNotFound       = domain.NotFound("memstore: table not found")
	errReservationNotFound = domain.NotFound("memstore: reservation not found")
)

// Store общее in-memory хранилище столов, броней и гостей
type Store struct {
	mu           sync.Mutex
	tables       map[int64]*domain.Table
	reservations map[int64]*domain.Reservation
	clients      map[string]int64
	nextID       int64

	// StatusWrites история SetStatus (tableID -> статусы по порядку)
	StatusWrites map[int64][]domain.TableStatus
	// Err, если задана, возвращается всеми операциями
	Err error
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		tables:       make(map[int64]*domain.Table),
		reservations: make(map[int64]*domain.Reservation),
		clients:      make(map[string]int64),
		StatusWrites: make(map[int64][]domain.TableStatus),
		nextID:       1000,
	}
}

// AddTable добавляет стол с заданным id
func (s *Store) AddTable(id int64, capacity int, zone string, status domain.TableStatus) *domain.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &domain.Table{ID: id, Capacity: capacity, Zone: zone, Status: status}
	s.tables[id] = t
	return cloneTable(t)
}

// AddReservation добавляет бронь и возвращает её id
func (s *Store) AddReservation(tableID int64, date time.Time, start types.TimeString, duration int, status domain.ReservationStatus) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.reservations[s.nextID] = &domain.Reservation{
		ID:              s.nextID,
		ClientID:        1,
		ClientName:      "guest",
		TableID:         tableID,
		Date:            domain.DateOnly(date),
		StartTime:       start,
		DurationMinutes: duration,
		Guests:          2,
		Status:          status,
	}
	return s.nextID
}

// Table возвращает копию стола или nil
func (s *Store) Table(id int64) *domain.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tables[id]; ok {
		return cloneTable(t)
	}
	return nil
}

// Reservation возвращает копию брони или nil
func (s *Store) Reservation(id int64) *domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.reservations[id]; ok {
		return cloneReservation(r)
	}
	return nil
}

// ReservationCount количество броней в хранилище
func (s *Store) ReservationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reservations)
}

// Tables репозиторий столов поверх Store
func (s *Store) Tables() *TableRepo { return &TableRepo{s: s} }

// Reservations репозиторий броней поверх Store
func (s *Store) Reservations() *ReservationRepo { return &ReservationRepo{s: s} }

// Clients репозиторий гостей поверх Store
func (s *Store) Clients() *ClientRepo { return &ClientRepo{s: s} }

// TableRepo in-memory репозиторий столов
type TableRepo struct{ s *Store }

func (r *TableRepo) List(_ context.Context, filter domain.TablesFilter) ([]*domain.Table, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}

	out := make([]*domain.Table, 0)
	for _, t := range r.s.tables {
		if filter.MinCapacity != nil && t.Capacity < *filter.MinCapacity {
			continue
		}
		if filter.Zone != nil && t.Zone != *filter.Zone {
			continue
		}
		if containsTableStatus(filter.ExcludeStatuses, t.Status) {
			continue
		}
		out = append(out, cloneTable(t))
	}
	// намеренно по убыванию id, чтобы порядок задавал вызывающий код
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *TableRepo) GetByID(_ context.Context, id int64) (*domain.Table, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	t, ok := r.s.tables[id]
	if !ok {
		return nil, errTableNotFound
	}
	return cloneTable(t), nil
}

func (r *TableRepo) Create(_ context.Context, t *domain.Table) (*domain.Table, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	r.s.nextID++
	t.ID = r.s.nextID
	r.s.tables[t.ID] = cloneTable(t)
	return t, nil
}

func (r *TableRepo) Update(_ context.Context, t *domain.Table) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.tables[t.ID]; !ok {
		return errTableNotFound
	}
	r.s.tables[t.ID] = cloneTable(t)
	return nil
}

func (r *TableRepo) SetStatus(_ context.Context, id int64, status domain.TableStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	t, ok := r.s.tables[id]
	if !ok {
		return errTableNotFound
	}
	t.Status = status
	r.s.StatusWrites[id] = append(r.s.StatusWrites[id], status)
	return nil
}

func (r *TableRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.tables[id]; !ok {
		return errTableNotFound
	}
	delete(r.s.tables, id)
	for rid, res := range r.s.reservations {
		if res.TableID == id {
			delete(r.s.reservations, rid)
		}
	}
	return nil
}

func (r *TableRepo) CountByStatus(_ context.Context) (map[domain.TableStatus]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	counts := make(map[domain.TableStatus]int)
	for _, t := range r.s.tables {
		counts[t.Status]++
	}
	return counts, nil
}

func (r *TableRepo) Zones(_ context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	seen := make(map[string]struct{})
	zones := make([]string, 0)
	for _, t := range r.s.tables {
		if t.Zone == "" {
			continue
		}
		if _, ok := seen[t.Zone]; ok {
			continue
		}
		seen[t.Zone] = struct{}{}
		zones = append(zones, t.Zone)
	}
	sort.Strings(zones)
	return zones, nil
}

// ReservationRepo in-memory репозиторий броней
type ReservationRepo struct{ s *Store }

func (r *ReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	r.s.nextID++
	res.ID = r.s.nextID
	res.Date = domain.DateOnly(res.Date)
	r.s.reservations[res.ID] = cloneReservation(res)
	return res, nil
}

func (r *ReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, errReservationNotFound
	}
	return cloneReservation(res), nil
}

func (r *ReservationRepo) List(_ context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}

	out := make([]*domain.Reservation, 0)
	for _, res := range r.s.reservations {
		if filter.TableID != nil && res.TableID != *filter.TableID {
			continue
		}
		if filter.Date != nil && !domain.SameDate(res.Date, *filter.Date) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsReservationStatus(filter.Statuses, res.Status) {
			continue
		}
		if filter.ExcludeID != nil && res.ID == *filter.ExcludeID {
			continue
		}
		out = append(out, cloneReservation(res))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].StartTime != out[j].StartTime {
			return strings.Compare(out[i].StartTime.String(), out[j].StartTime.String()) < 0
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ReservationRepo) ListByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	return r.List(ctx, domain.ReservationsFilter{Date: &date})
}

func (r *ReservationRepo) Update(_ context.Context, res *domain.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.reservations[res.ID]; !ok {
		return errReservationNotFound
	}
	r.s.reservations[res.ID] = cloneReservation(res)
	return nil
}

func (r *ReservationRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	res, ok := r.s.reservations[id]
	if !ok {
		return errReservationNotFound
	}
	res.Status = status
	return nil
}

func (r *ReservationRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.reservations[id]; !ok {
		return errReservationNotFound
	}
	delete(r.s.reservations, id)
	return nil
}

func (r *ReservationRepo) HasLiveReservations(_ context.Context, tableID int64, excludeID *int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	for _, res := range r.s.reservations {
		if res.TableID != tableID || !res.Status.IsLive() {
			continue
		}
		if excludeID != nil && res.ID == *excludeID {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (r *ReservationRepo) HasUpcomingReservations(_ context.Context, tableID int64, fromDate time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	from := domain.DateOnly(fromDate)
	for _, res := range r.s.reservations {
		if res.TableID == tableID && res.Status != domain.ReservationCancelled && !res.Date.Before(from) {
			return true, nil
		}
	}
	return false, nil
}

// ClientRepo in-memory репозиторий гостей
type ClientRepo struct{ s *Store }

func (r *ClientRepo) GetOrCreate(_ context.Context, name string) (*domain.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	id, ok := r.s.clients[name]
	if !ok {
		r.s.nextID++
		id = r.s.nextID
		r.s.clients[name] = id
	}
	return &domain.Client{ID: id, Name: name}, nil
}

func cloneTable(t *domain.Table) *domain.Table {
	c := *t
	return &c
}

func cloneReservation(r *domain.Reservation) *domain.Reservation {
	c := *r
	return &c
}

func containsTableStatus(list []domain.TableStatus, s domain.TableStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsReservationStatus(list []domain.ReservationStatus, s domain.ReservationStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
