package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
)

// UseCase use case для получения доступных слотов для бронирования
//
// Не имеет состояния и не пишет в хранилище: повторный вызов без изменений
// в хранилище возвращает тот же упорядоченный список.
type UseCase struct {
	resourceRepo ResourceRepository
	blockedRepo  BlockedRangeRepository
	bookingRepo  BookingRepository
	catalog      ServiceCatalog
	metrics      MetricsRecorder
	logger       Logger
}

// NewUseCase создает новый экземпляр use case; metrics может быть nil
func NewUseCase(
	resourceRepo ResourceRepository,
	blockedRepo BlockedRangeRepository,
	bookingRepo BookingRepository,
	catalog ServiceCatalog,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		resourceRepo: resourceRepo,
		blockedRepo:  blockedRepo,
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Пустой список слотов (выходной или все занято) - это не ошибка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: resource=%s, service=%s, date=%s", req.ResourceID, req.ServiceID, req.Date)

	// 1. Валидация входных данных
	date, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем ресурс с рабочими часами
	resource, err := uc.resourceRepo.GetResource(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			uc.logger.Warn("GetAvailableSlots: resource id=%s not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get resource id=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrStoreUnavailable, err)
	}

	// 3. Получаем услугу
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		if errors.Is(err, domain.ErrInvalidServiceSpec) {
			uc.logger.Warn("GetAvailableSlots: service id=%s is invalid: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrStoreUnavailable, err)
	}

	// 4. Границы суток в часовом поясе ресурса
	day, err := scheduling.DayBounds(resource, date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: resource id=%s has invalid timezone: %v", resource.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 5. Блокировки и активные бронирования за сутки
	blocks, err := uc.blockedRepo.ListBlockedRanges(ctx, resource.ID, day.Start, day.End)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked ranges: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked ranges: %v", ErrStoreUnavailable, err)
	}

	bookings, err := uc.bookingRepo.ListBookings(ctx, domain.ResourceBookingsFilter{
		ResourceID: resource.ID,
		From:       day.Start,
		To:         day.End,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrStoreUnavailable, err)
	}

	// 6. Свободные окна и слоты
	windows, err := scheduling.ResolveWindows(resource, date, blocks, bookings)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to resolve windows: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	slots, err := scheduling.GenerateSlots(windows, *service, resource.SlotInterval())
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 7. Повторная сверка с бронированиями: слот вместе с буфером не должен задевать занятое время
	generated := len(slots)
	slots = scheduling.FilterConflicting(slots, *service, resource.ID, bookings)
	if dropped := generated - len(slots); dropped > 0 {
		uc.logger.Warn("GetAvailableSlots: dropped %d conflicting slots for resource=%s", dropped, resource.ID)
	}

	if uc.metrics != nil {
		uc.metrics.SlotsReturned(len(slots))
	}

	uc.logger.Info("GetAvailableSlots: found %d slots in %d windows for resource=%s on %s",
		len(slots), len(windows), resource.ID, date)

	starts := make([]time.Time, len(slots))
	for i, slot := range slots {
		starts[i] = slot.Start
	}

	return &Response{
		ResourceID:          resource.ID,
		ServiceID:           req.ServiceID,
		Date:                date.String(),
		Timezone:            resource.Timezone,
		DurationMinutes:     service.DurationMinutes,
		BufferMinutes:       service.BufferMinutes,
		SlotIntervalMinutes: resource.SlotInterval(),
		Slots:               starts,
	}, nil
}
