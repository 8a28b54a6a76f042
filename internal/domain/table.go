package domain

import (
	"fmt"
	"time"
)

// TableStatus статус стола. Кроме maintenance, это производное значение от бронирований стола.
type TableStatus string

const (
	TableFree        TableStatus = "free"
	TableOccupied    TableStatus = "occupied"
	TableReserved    TableStatus = "reserved"
	TableMaintenance TableStatus = "maintenance"
)

// IsValid проверяет, что статус входит в закрытый список
func (s TableStatus) IsValid() bool {
	switch s {
	case TableFree, TableOccupied, TableReserved, TableMaintenance:
		return true
	}
	return false
}

// ParseTableStatus парсит статус стола из строки
func ParseTableStatus(s string) (TableStatus, error) {
	status := TableStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown table status %q", ErrValidation, s)
	}
	return status, nil
}

// Table стол ресторана
type Table struct {
	ID        int64
	Capacity  int
	Zone      string
	Status    TableStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsUnderMaintenance returns true if the table is manually taken out of service
func (t *Table) IsUnderMaintenance() bool {
	return t.Status == TableMaintenance
}

// CanSeat returns true if the table fits the party
func (t *Table) CanSeat(guests int) bool {
	return t.Capacity >= guests
}

// TablesFilter фильтр выборки столов
type TablesFilter struct {
	MinCapacity     *int
	Zone            *string
	ExcludeStatuses []TableStatus
}

// TableStatistics сводка по залу
type TableStatistics struct {
	Total          int
	Free           int
	Occupied       int
	Reserved       int
	Maintenance    int
	TotalActive    int     // столы не на обслуживании
	Busy           int     // occupied + reserved
	LoadPercentage float64 // busy / active * 100, не больше 100
}

// NewTableStatistics считает статистику по количеству столов в каждом статусе
func NewTableStatistics(counts map[TableStatus]int) TableStatistics {
	stats := TableStatistics{
		Free:        counts[TableFree],
		Occupied:    counts[TableOccupied],
		Reserved:    counts[TableReserved],
		Maintenance: counts[TableMaintenance],
	}
	stats.Total = stats.Free + stats.Occupied + stats.Reserved + stats.Maintenance
	stats.TotalActive = stats.Total - stats.Maintenance
	stats.Busy = stats.Occupied + stats.Reserved

	if stats.TotalActive > 0 {
		stats.LoadPercentage = float64(stats.Busy) / float64(stats.TotalActive) * 100
		if stats.LoadPercentage > 100 {
			stats.LoadPercentage = 100
		}
	}
	return stats
}
