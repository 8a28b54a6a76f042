package update_reservation

import (
	"time"

	"github.com/m04kA/SMC-TableService/internal/api/handlers"
	"github.com/m04kA/SMC-TableService/internal/domain"
	updateReservation "github.com/m04kA/SMC-TableService/internal/usecase/update_reservation"
	"github.com/m04kA/SMC-TableService/pkg/types"
)

// UpdateReservationRequest HTTP request model (полная перезапись, status необязателен)
type UpdateReservationRequest struct {
	TableID         int64  `json:"tableId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Guests          int    `json:"guests"`
	Status          string `json:"status,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	ClientName      string `json:"clientName"`
	TableID         int64  `json:"tableId"`
	PreviousTableID *int64 `json:"previousTableId,omitempty"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Guests          int    `json:"guests"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func (r *UpdateReservationRequest) ToUseCaseRequest(reservationID int64) (*updateReservation.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &updateReservation.Request{
		ReservationID:   reservationID,
		TableID:         r.TableID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Guests:          r.Guests,
		Status:          domain.ReservationStatus(r.Status),
	}, nil
}

func FromUseCaseResponse(resp *updateReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		ClientName:      resp.ClientName,
		TableID:         resp.TableID,
		PreviousTableID: resp.PreviousTableID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Guests:          resp.Guests,
		Status:          string(resp.Status),
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
