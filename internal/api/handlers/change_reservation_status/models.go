package change_reservation_status

import (
	"github.com/m04kA/SMC-TableService/internal/domain"
	changeStatus "github.com/m04kA/SMC-TableService/internal/usecase/change_reservation_status"
)

// ChangeStatusRequest HTTP request model
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// ChangeStatusResponse HTTP response model
type ChangeStatusResponse struct {
	ID             int64  `json:"id"`
	TableID        int64  `json:"tableId"`
	Date           string `json:"date"`
	StartTime      string `json:"startTime"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previousStatus"`
}

func FromUseCaseResponse(resp *changeStatus.Response) *ChangeStatusResponse {
	return &ChangeStatusResponse{
		ID:             resp.ID,
		TableID:        resp.TableID,
		Date:           resp.Date.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		Status:         string(resp.Status),
		PreviousStatus: string(resp.PreviousStatus),
	}
}
