package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
	"github.com/m04kA/SMC-BookingEngine/internal/service/commitguard"
)

// ConflictStagePrecheck метка метрики конфликта, найденного до коммита
const ConflictStagePrecheck = "precheck"

// UseCase use case для создания бронирования
type UseCase struct {
	resourceRepo ResourceRepository
	blockedRepo  BlockedRangeRepository
	bookingRepo  BookingRepository
	catalog      ServiceCatalog
	guard        CommitGuard
	metrics      MetricsRecorder
	logger       Logger

	initialStatus domain.BookingStatus
	precheck      bool
}

// NewUseCase создает новый экземпляр use case; metrics может быть nil
func NewUseCase(
	resourceRepo ResourceRepository,
	blockedRepo BlockedRangeRepository,
	bookingRepo BookingRepository,
	catalog ServiceCatalog,
	guard CommitGuard,
	metrics MetricsRecorder,
	logger Logger,
	opts Options,
) (*UseCase, error) {
	status, err := domain.ParseBookingStatus(opts.InitialStatus)
	if err != nil {
		return nil, fmt.Errorf("create_booking: initial status: %w", err)
	}
	if !status.Occupies() {
		return nil, fmt.Errorf("create_booking: initial status %q must occupy time", status)
	}

	return &UseCase{
		resourceRepo:  resourceRepo,
		blockedRepo:   blockedRepo,
		bookingRepo:   bookingRepo,
		catalog:       catalog,
		guard:         guard,
		metrics:       metrics,
		logger:        logger,
		initialStatus: status,
		precheck:      opts.ConflictPrecheck,
	}, nil
}

// Execute выполняет use case создания бронирования
//
// Диапазон восстанавливается как [slotStart, slotStart+duration), буфер услуги
// добавляется к занимаемому времени. Список бронирований, прочитанный для
// предварительной проверки, может устареть; окончательное решение принимает CommitGuard.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: resource=%s, service=%s, client=%s, slot=%s",
		req.ResourceID, req.ServiceID, req.ClientID, req.SlotStart.UTC().Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем ресурс
	resource, err := uc.resourceRepo.GetResource(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			uc.logger.Warn("CreateBooking: resource id=%s not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get resource id=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrStoreUnavailable, err)
	}

	// 3. Получаем услугу
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		if errors.Is(err, domain.ErrInvalidServiceSpec) {
			uc.logger.Warn("CreateBooking: service id=%s is invalid: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrStoreUnavailable, err)
	}
	if err := service.Validate(); err != nil {
		uc.logger.Warn("CreateBooking: service id=%s is invalid: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Восстанавливаем диапазон из начала слота и длительности услуги
	slot := domain.Slot{Start: req.SlotStart.UTC()}
	serviceRange := slot.Range(service.DurationMinutes)
	occupied := domain.OccupiedRange(serviceRange, service.BufferMinutes)

	// 5. Слот должен помещаться в рабочие часы дня и не попадать на блокировки
	loc, err := resource.Location()
	if err != nil {
		uc.logger.Warn("CreateBooking: resource id=%s has invalid timezone: %v", resource.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	date := scheduling.DateOf(slot.Start.In(loc))

	day, err := scheduling.DayBounds(resource, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	blocks, err := uc.blockedRepo.ListBlockedRanges(ctx, resource.ID, day.Start, day.End)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get blocked ranges: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked ranges: %v", ErrStoreUnavailable, err)
	}

	windows, err := scheduling.ResolveWindows(resource, date, blocks, nil)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to resolve windows: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !fitsAnyWindow(occupied, windows) {
		uc.logger.Warn("CreateBooking: range %s does not fit working hours of resource=%s on %s", occupied, resource.ID, date)
		return nil, ErrOutsideSchedule
	}

	// 6. Быстрая проверка конфликта по текущему списку бронирований
	if uc.precheck {
		bookings, err := uc.bookingRepo.ListBookings(ctx, domain.ResourceBookingsFilter{
			ResourceID: resource.ID,
			From:       occupied.Start,
			To:         occupied.End,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrStoreUnavailable, err)
		}

		if scheduling.HasConflict(occupied, resource.ID, bookings) {
			uc.logger.Warn("CreateBooking: precheck conflict for resource=%s range=%s", resource.ID, occupied)
			if uc.metrics != nil {
				uc.metrics.BookingConflict(ConflictStagePrecheck)
			}
			return nil, fmt.Errorf("%w: %s", ErrConflict, serviceRange)
		}
	}

	// 7. Атомарная фиксация
	booking, err := uc.guard.Commit(ctx, domain.NewBooking{
		ResourceID:    resource.ID,
		ServiceID:     req.ServiceID,
		ClientID:      req.ClientID,
		Range:         serviceRange,
		BufferMinutes: service.BufferMinutes,
		Status:        uc.initialStatus,
	})
	if err != nil {
		switch {
		case errors.Is(err, commitguard.ErrConflict):
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		case errors.Is(err, commitguard.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", booking.ID)

	return &Response{
		ID:            booking.ID,
		ResourceID:    booking.ResourceID,
		ServiceID:     booking.ServiceID,
		ClientID:      booking.ClientID,
		Start:         booking.Range.Start,
		End:           booking.Range.End,
		BufferMinutes: booking.BufferMinutes,
		Status:        string(booking.Status),
		CreatedAt:     booking.CreatedAt,
	}, nil
}
