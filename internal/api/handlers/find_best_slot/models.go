package find_best_slot

import (
	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/internal/service/tables/models"
)

// BestSlotResponse HTTP response model
type BestSlotResponse struct {
	Found       bool                   `json:"found"`
	Date        *string                `json:"date"`
	StartTime   *string                `json:"startTime"`
	BestTableID *int64                 `json:"bestTableId"`
	Tables      []models.TableResponse `json:"tables"`
}

// FromSuggestion конвертирует найденный слот в HTTP response
func FromSuggestion(s *domain.SlotSuggestion) *BestSlotResponse {
	if s == nil {
		return &BestSlotResponse{Tables: []models.TableResponse{}}
	}

	date := s.Date.Format(domain.DateFormat)
	start := s.StartTime.String()
	resp := &BestSlotResponse{
		Found:     true,
		Date:      &date,
		StartTime: &start,
		Tables:    models.FromDomainTableList(s.Tables).Tables,
	}
	if best := s.BestTable(); best != nil {
		resp.BestTableID = &best.ID
	}

	return resp
}
