package commitguard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// ConflictStageCommit метка метрики конфликта, обнаруженного при записи
const ConflictStageCommit = "commit"

// Guard последняя линия защиты от двойного бронирования.
// Проверка пересечения и вставка выполняются хранилищем атомарно;
// Guard валидирует запрос, ограничивает вызов таймаутом и классифицирует результат.
// Повторных попыток нет: при конфликте клиент должен заново запросить слоты.
type Guard struct {
	store   BookingStore
	timeout time.Duration
	metrics MetricsRecorder
	logger  Logger
}

// NewGuard создает Guard. timeout <= 0 - без собственного таймаута (только ctx вызывающего).
// metrics может быть nil.
func NewGuard(store BookingStore, timeout time.Duration, metrics MetricsRecorder, logger Logger) *Guard {
	return &Guard{
		store:   store,
		timeout: timeout,
		metrics: metrics,
		logger:  logger,
	}
}

// Commit атомарно фиксирует бронирование
//
// Ошибки:
//   - ErrInvalidInput: start >= end, неизвестный статус, пустые ID
//   - ErrConflict: занимаемый диапазон пересекается с активным бронированием ресурса
//   - ErrStoreUnavailable: ошибка хранилища или истек таймаут
func (g *Guard) Commit(ctx context.Context, req domain.NewBooking) (*domain.Booking, error) {
	if err := validate(req); err != nil {
		g.logger.Warn("CommitGuard: validation failed: %v", err)
		return nil, err
	}

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	booking, err := g.store.InsertBookingIfFree(callCtx, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotTaken):
			g.logger.Warn("CommitGuard: resource=%s range=%s already taken", req.ResourceID, req.Occupied())
			if g.metrics != nil {
				g.metrics.BookingConflict(ConflictStageCommit)
			}
			return nil, fmt.Errorf("%w: resource %s, range %s", ErrConflict, req.ResourceID, req.Range)
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded):
			g.logger.Error("CommitGuard: store timeout after %s for resource=%s: %v", g.timeout, req.ResourceID, err)
			return nil, fmt.Errorf("%w: timeout: %v", ErrStoreUnavailable, err)
		default:
			g.logger.Error("CommitGuard: store failed for resource=%s: %v", req.ResourceID, err)
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	if g.metrics != nil {
		g.metrics.BookingCommitted(string(booking.Status))
	}
	g.logger.Info("CommitGuard: booking id=%s committed for resource=%s range=%s", booking.ID, booking.ResourceID, booking.Range)

	return booking, nil
}

func validate(req domain.NewBooking) error {
	if strings.TrimSpace(req.ResourceID) == "" {
		return fmt.Errorf("%w: resourceID is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ServiceID) == "" {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ClientID) == "" {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}
	if !req.Range.IsValid() {
		return fmt.Errorf("%w: %v: %s", ErrInvalidInput, domain.ErrInvalidTimeRange, req.Range)
	}
	if req.BufferMinutes < 0 {
		return fmt.Errorf("%w: buffer must not be negative", ErrInvalidInput)
	}
	if !req.Status.Occupies() {
		return fmt.Errorf("%w: initial status %q does not occupy time", ErrInvalidInput, req.Status)
	}
	return nil
}
