package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований: просмотр, подтверждение, отмена
type Service struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, resourceRepo ResourceRepository, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// ListResourceBookings получает бронирования ресурса, пересекающие период [From, To)
// Отмененные включаются только при IncludeCanceled.
func (s *Service) ListResourceBookings(ctx context.Context, req *models.ListResourceBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListResourceBookings: resource=%s, period=%s to %s, includeCanceled=%t",
		req.ResourceID, req.From.Format(time.RFC3339), req.To.Format(time.RFC3339), req.IncludeCanceled)

	if strings.TrimSpace(req.ResourceID) == "" {
		return nil, fmt.Errorf("%w: resourceId is required", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() || !req.From.Before(req.To) {
		s.logger.Warn("ListResourceBookings: invalid period %s - %s", req.From, req.To)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}
	if req.To.Sub(req.From) > MaxListPeriodDays*24*time.Hour {
		return nil, fmt.Errorf("%w: period must not exceed %d days", ErrInvalidInput, MaxListPeriodDays)
	}

	if _, err := s.resourceRepo.GetResource(ctx, req.ResourceID); err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			s.logger.Warn("ListResourceBookings: resource id=%s not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("ListResourceBookings: failed to get resource id=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: ListResourceBookings - get resource: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.ListBookings(ctx, domain.ResourceBookingsFilter{
		ResourceID:      req.ResourceID,
		From:            req.From.UTC(),
		To:              req.To.UTC(),
		IncludeCanceled: req.IncludeCanceled,
	})
	if err != nil {
		s.logger.Error("ListResourceBookings: repository error for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: ListResourceBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListResourceBookings: found %d bookings for resource=%s", len(bookings), req.ResourceID)
	return models.FromDomainBookingList(bookings), nil
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%s, status=%v", req.ClientID, req.Status)

	if strings.TrimSpace(req.ClientID) == "" {
		return nil, fmt.Errorf("%w: clientId is required", ErrInvalidInput)
	}

	filter := domain.ClientBookingsFilter{ClientID: req.ClientID}
	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%s", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.ListClientBookings(ctx, filter)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: found %d bookings for client=%s", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает бронирование: pending -> confirmed
func (s *Service) Confirm(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: booking id=%s", id)
	return s.transition(ctx, "Confirm", id, domain.StatusConfirmed, nil)
}

// Cancel отменяет бронирование: pending | confirmed -> canceled
// Отмена освобождает время ресурса.
func (s *Service) Cancel(ctx context.Context, id string, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: booking id=%s", id)

	var reason *string
	if req != nil {
		trimmed := strings.TrimSpace(req.CancellationReason)
		if len(trimmed) > domain.MaxCancellationReasonLength {
			return nil, fmt.Errorf("%w: cancellation reason is too long (max %d)", ErrInvalidInput, domain.MaxCancellationReasonLength)
		}
		if trimmed != "" {
			reason = &trimmed
		}
	}

	return s.transition(ctx, "Cancel", id, domain.StatusCanceled, reason)
}

// transition проверяет допустимость перехода и выполняет условное обновление статуса.
// Если статус изменился между чтением и записью, хранилище вернет domain.ErrInvalidTransition.
func (s *Service) transition(
	ctx context.Context,
	op string,
	id string,
	to domain.BookingStatus,
	reason *string,
) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if !booking.CanTransitionTo(to) {
		s.logger.Warn("%s: booking id=%s cannot move from %s to %s", op, id, booking.Status, to)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, to)
	}

	updated, err := s.bookingRepo.UpdateBookingStatus(ctx, id, booking.Status, to, reason)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		case errors.Is(err, domain.ErrInvalidTransition):
			s.logger.Warn("%s: booking id=%s was modified concurrently", op, id)
			return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
		default:
			s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
			return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}
	}

	s.logger.Info("%s: booking id=%s is now %s", op, id, updated.Status)
	return models.FromDomainBooking(updated), nil
}

func (s *Service) getBooking(ctx context.Context, op, id string) (*domain.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
