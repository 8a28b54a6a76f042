package domain

import (
	"time"

	"github.com/m04kA/SMC-TableService/pkg/types"
)

// SlotSuggestion найденный слот и подходящие на него столы
type SlotSuggestion struct {
	Date      time.Time
	StartTime types.TimeString
	Tables    []*Table // отсортированы по (capacity, zone, id)
}

// BestTable returns the first (best-fit) candidate or nil
func (s *SlotSuggestion) BestTable() *Table {
	if s == nil || len(s.Tables) == 0 {
		return nil
	}
	return s.Tables[0]
}
