package bookings

import (
	"context"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	ListBookings(ctx context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error)
	ListClientBookings(ctx context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, from, to domain.BookingStatus, reason *string) (*domain.Booking, error)
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetResource(ctx context.Context, id string) (*domain.Resource, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
