package resources

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetResource(ctx context.Context, id string) (*domain.Resource, error)
	UpdateSchedule(ctx context.Context, resource *domain.Resource) (*domain.Resource, error)
}

// BlockedRangeRepository интерфейс репозитория блокировок времени
type BlockedRangeRepository interface {
	ListBlockedRanges(ctx context.Context, resourceID string, from, to time.Time) ([]domain.BlockedRange, error)
	CreateBlockedRange(ctx context.Context, block domain.BlockedRange) (*domain.BlockedRange, error)
	DeleteBlockedRange(ctx context.Context, resourceID, id string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
