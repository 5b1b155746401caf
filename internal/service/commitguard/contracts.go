package commitguard

import (
	"context"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// BookingStore атомарная вставка бронирования.
// Реализация обязана проверить пересечение и вставить запись как одну неделимую операцию
// и вернуть domain.ErrSlotTaken, если занимаемый диапазон пересекается с активным бронированием.
type BookingStore interface {
	InsertBookingIfFree(ctx context.Context, booking domain.NewBooking) (*domain.Booking, error)
}

// MetricsRecorder счетчики бронирований
type MetricsRecorder interface {
	BookingCommitted(status string)
	BookingConflict(stage string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
