package models

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// Request модели

// ListResourceBookingsRequest запрос на получение бронирований ресурса за период
type ListResourceBookingsRequest struct {
	ResourceID      string    `json:"resourceId"`
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	IncludeCanceled bool      `json:"includeCanceled,omitempty"`
}

// GetClientBookingsRequest запрос на получение истории бронирований клиента
type GetClientBookingsRequest struct {
	ClientID string  `json:"clientId"`
	Status   *string `json:"status,omitempty"` // Опционально: pending | confirmed | canceled
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// Response модели

// BookingResponse ответ с информацией о бронировании
type BookingResponse struct {
	ID                 string     `json:"id"`
	ResourceID         string     `json:"resourceId"`
	ServiceID          string     `json:"serviceId"`
	ClientID           string     `json:"clientId"`
	Start              time.Time  `json:"start"`
	End                time.Time  `json:"end"`
	BufferMinutes      int        `json:"bufferMinutes"`
	Status             string     `json:"status"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CanceledAt         *time.Time `json:"canceledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(booking *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 booking.ID,
		ResourceID:         booking.ResourceID,
		ServiceID:          booking.ServiceID,
		ClientID:           booking.ClientID,
		Start:              booking.Range.Start.UTC(),
		End:                booking.Range.End.UTC(),
		BufferMinutes:      booking.BufferMinutes,
		Status:             string(booking.Status),
		CancellationReason: booking.CancellationReason,
		CanceledAt:         booking.CanceledAt,
		CreatedAt:          booking.CreatedAt,
		UpdatedAt:          booking.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		result = append(result, *FromDomainBooking(booking))
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}
