package models

import (
	"time"

	"github.com/m04kA/SMC-TableService/internal/domain"
)

// Request модели

// ListTablesRequest фильтр списка столов
type ListTablesRequest struct {
	Zone        *string
	MinCapacity *int
}

// CreateTableRequest запрос на создание стола
type CreateTableRequest struct {
	Capacity int    `json:"capacity"`
	Zone     string `json:"zone"`
	Status   string `json:"status,omitempty"` // free (по умолчанию) или maintenance
}

// UpdateTableRequest запрос на изменение стола.
// Единственный способ снять стол с обслуживания.
type UpdateTableRequest struct {
	Capacity int    `json:"capacity"`
	Zone     string `json:"zone"`
	Status   string `json:"status,omitempty"` // пусто - статус не меняется
}

// Response модели

// TableResponse ответ с данными стола
type TableResponse struct {
	ID        int64     `json:"id"`
	Capacity  int       `json:"capacity"`
	Zone      string    `json:"zone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableListResponse ответ со списком столов
type TableListResponse struct {
	Tables []TableResponse `json:"tables"`
}

// StatisticsResponse сводка по залу
type StatisticsResponse struct {
	Total          int      `json:"total"`
	Free           int      `json:"free"`
	Occupied       int      `json:"occupied"`
	Reserved       int      `json:"reserved"`
	Maintenance    int      `json:"maintenance"`
	TotalActive    int      `json:"totalActive"`
	Busy           int      `json:"busy"`
	LoadPercentage float64  `json:"loadPercentage"`
	Zones          []string `json:"zones"`
}

// Методы конвертации

// FromDomainTable конвертирует domain модель в DTO
func FromDomainTable(t *domain.Table) *TableResponse {
	if t == nil {
		return nil
	}

	return &TableResponse{
		ID:        t.ID,
		Capacity:  t.Capacity,
		Zone:      t.Zone,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// FromDomainTableList конвертирует список domain моделей в DTO
func FromDomainTableList(tables []*domain.Table) *TableListResponse {
	resp := &TableListResponse{
		Tables: make([]TableResponse, 0, len(tables)),
	}

	for _, t := range tables {
		resp.Tables = append(resp.Tables, *FromDomainTable(t))
	}

	return resp
}

// FromDomainStatistics собирает ответ статистики
func FromDomainStatistics(stats domain.TableStatistics, zones []string) *StatisticsResponse {
	if zones == nil {
		zones = []string{}
	}

	return &StatisticsResponse{
		Total:          stats.Total,
		Free:           stats.Free,
		Occupied:       stats.Occupied,
		Reserved:       stats.Reserved,
		Maintenance:    stats.Maintenance,
		TotalActive:    stats.TotalActive,
		Busy:           stats.Busy,
		LoadPercentage: stats.LoadPercentage,
		Zones:          zones,
	}
}
