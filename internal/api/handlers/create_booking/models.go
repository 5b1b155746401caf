package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-BookingEngine/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ResourceID string `json:"resourceId"`
	ServiceID  string `json:"serviceId"`
	ClientID   string `json:"clientId"`
	SlotStart  string `json:"slotStart"` // "2025-10-15T10:00:00Z", любой RFC3339 offset
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            string `json:"id"`
	ResourceID    string `json:"resourceId"`
	ServiceID     string `json:"serviceId"`
	ClientID      string `json:"clientId"`
	Start         string `json:"start"`
	End           string `json:"end"`
	BufferMinutes int    `json:"bufferMinutes"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	slotStart, err := time.Parse(time.RFC3339, r.SlotStart)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ResourceID: r.ResourceID,
		ServiceID:  r.ServiceID,
		ClientID:   r.ClientID,
		SlotStart:  slotStart,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		ResourceID:    resp.ResourceID,
		ServiceID:     resp.ServiceID,
		ClientID:      resp.ClientID,
		Start:         resp.Start.UTC().Format(time.RFC3339),
		End:           resp.End.UTC().Format(time.RFC3339),
		BufferMinutes: resp.BufferMinutes,
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt.UTC().Format(time.RFC3339),
	}
}
