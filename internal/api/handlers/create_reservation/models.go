package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-TableService/internal/api/handlers"
	"github.com/m04kA/SMC-TableService/internal/domain"
	createReservation "github.com/m04kA/SMC-TableService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-TableService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ClientName      string `json:"clientName"`
	TableID         int64  `json:"tableId"`
	Date            string `json:"date"`      // "2025-06-10"
	StartTime       string `json:"startTime"` // "18:30"
	DurationMinutes int    `json:"durationMinutes"`
	Guests          int    `json:"guests"`
	Status          string `json:"status,omitempty"` // confirmed (по умолчанию) или active
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	ClientName      string `json:"clientName"`
	TableID         int64  `json:"tableId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Guests          int    `json:"guests"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		ClientName:      r.ClientName,
		TableID:         r.TableID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Guests:          r.Guests,
		Status:          domain.ReservationStatus(r.Status),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		ClientName:      resp.ClientName,
		TableID:         resp.TableID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Guests:          resp.Guests,
		Status:          string(resp.Status),
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
