package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// ResourceRepository интерфейс репозитория ресурсов (мастеров)
type ResourceRepository interface {
	GetResource(ctx context.Context, id string) (*domain.Resource, error)
}

// BlockedRangeRepository интерфейс репозитория блокировок времени
type BlockedRangeRepository interface {
	ListBlockedRanges(ctx context.Context, resourceID string, from, to time.Time) ([]domain.BlockedRange, error)
}

// BookingRepository интерфейс репозитория бронирований (для предварительной проверки)
type BookingRepository interface {
	ListBookings(ctx context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error)
}

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	GetService(ctx context.Context, serviceID string) (*domain.ServiceSpec, error)
}

// CommitGuard атомарная фиксация бронирования
type CommitGuard interface {
	Commit(ctx context.Context, req domain.NewBooking) (*domain.Booking, error)
}

// MetricsRecorder метрики конфликтов
type MetricsRecorder interface {
	BookingConflict(stage string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
