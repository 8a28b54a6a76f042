package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-TableService/internal/domain"
)

// DayPlan снимок зала на дату: столы не на обслуживании и занятые промежутки каждого стола.
// Используется поиском слотов, чтобы не ходить в БД на каждое время сетки.
type DayPlan struct {
	Date   time.Time
	tables []*domain.Table
	byID   map[int64]*domain.Table
	busy   map[int64][]interval
}

// Table возвращает стол из снимка или nil, если его нет (удален или на обслуживании)
func (p *DayPlan) Table(id int64) *domain.Table {
	return p.byID[id]
}

// IsAvailable проверяет, свободен ли стол на [start, start+duration)
func (p *DayPlan) IsAvailable(tableID int64, start, duration int) bool {
	return free(p.busy[tableID], start, duration)
}

// Candidates столы с capacity >= guests, свободные на весь промежуток, в порядке (capacity, zone, id)
func (p *DayPlan) Candidates(start, duration, guests int) []*domain.Table {
	out := make([]*domain.Table, 0)
	for _, t := range p.tables {
		if !t.CanSeat(guests) || t.IsUnderMaintenance() {
			continue
		}
		if p.IsAvailable(t.ID, start, duration) {
			out = append(out, t)
		}
	}
	return out
}

// SortTables упорядочивает столы по (capacity, zone, id): сначала самый маленький подходящий
func SortTables(tables []*domain.Table) {
	sort.SliceStable(tables, func(i, j int) bool {
		a, b := tables[i], tables[j]
		if a.Capacity != b.Capacity {
			return a.Capacity < b.Capacity
		}
		if a.Zone != b.Zone {
			return a.Zone < b.Zone
		}
		return a.ID < b.ID
	})
}
