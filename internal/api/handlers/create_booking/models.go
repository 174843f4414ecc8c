package create_booking

import (
	"time"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	createBooking "github.com/m04kA/SMC-WellnessService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Identity  string `json:"identity"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
}

// BookingCreatedResponse HTTP response model
type BookingCreatedResponse struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	StartTime   string    `json:"startTime"`
	Status      string    `json:"status"`
	DisplayName string    `json:"displayName"`
	GroupTag    string    `json:"groupTag,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Identity:  r.Identity,
		Date:      date,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingCreatedResponse {
	return &BookingCreatedResponse{
		ID:          resp.ID.String(),
		Date:        resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		Status:      resp.Status,
		DisplayName: resp.DisplayName,
		GroupTag:    resp.GroupTag,
		CreatedAt:   resp.CreatedAt,
	}
}
