package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableService/internal/domain"
)

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	ClientName      string `json:"clientName"`
	TableID         int64  `json:"tableId"`
	Date            string `json:"date"`      // "2025-06-10"
	StartTime       string `json:"startTime"` // "18:30"
	EndTime         string `json:"endTime"`   // может выходить за 23:00
	DurationMinutes int    `json:"durationMinutes"`
	Guests          int    `json:"guests"`
	Status          string `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Date         string                `json:"date"`
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:              r.ID,
		ClientID:        r.ClientID,
		ClientName:      r.ClientName,
		TableID:         r.TableID,
		Date:            r.Date.Format(domain.DateFormat),
		StartTime:       r.StartTime.String(),
		DurationMinutes: r.DurationMinutes,
		Guests:          r.Guests,
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	if end, err := r.EndMinutes(); err == nil {
		resp.EndTime = formatMinutes(end)
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(date time.Time, reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Date:         date.Format(domain.DateFormat),
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r))
	}

	return resp
}

// formatMinutes HH:MM без ограничения сутками (бронь до 01:30 следующего дня -> "25:30")
func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
