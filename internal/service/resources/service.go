package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/service/resources/models"
)

// Service сервис настроек ресурса: расписание и блокировки времени
type Service struct {
	resourceRepo ResourceRepository
	blockedRepo  BlockedRangeRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса ресурсов
func NewService(resourceRepo ResourceRepository, blockedRepo BlockedRangeRepository, logger Logger) *Service {
	return &Service{
		resourceRepo: resourceRepo,
		blockedRepo:  blockedRepo,
		logger:       logger,
	}
}

// GetSchedule получает расписание ресурса
func (s *Service) GetSchedule(ctx context.Context, resourceID string) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: resource=%s", resourceID)

	resource, err := s.getResource(ctx, "GetSchedule", resourceID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainResource(resource), nil
}

// UpdateSchedule обновляет часовой пояс, шаг сетки слотов и рабочие часы
func (s *Service) UpdateSchedule(ctx context.Context, resourceID string, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: resource=%s", resourceID)

	resource, err := s.getResource(ctx, "UpdateSchedule", resourceID)
	if err != nil {
		return nil, err
	}

	// Обновляем только переданные поля
	if req.Timezone != nil {
		resource.Timezone = strings.TrimSpace(*req.Timezone)
	}
	if req.SlotIntervalMinutes != nil {
		resource.SlotIntervalMinutes = *req.SlotIntervalMinutes
	}
	if req.WorkingHours != nil {
		resource.WorkingHours = req.WorkingHours.ToDomain()
	}

	if err := validateSchedule(resource); err != nil {
		s.logger.Warn("UpdateSchedule: validation failed for resource=%s: %v", resourceID, err)
		return nil, err
	}

	updated, err := s.resourceRepo.UpdateSchedule(ctx, resource)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		s.logger.Error("UpdateSchedule: repository error for resource=%s: %v", resourceID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: schedule of resource=%s updated", resourceID)
	return models.FromDomainResource(updated), nil
}

// AddBlockedRange блокирует время ресурса (отпуск, обучение, внешнее событие)
// Уже существующие бронирования не отменяются.
func (s *Service) AddBlockedRange(ctx context.Context, resourceID string, req *models.CreateBlockedRangeRequest) (*models.BlockedRangeResponse, error) {
	s.logger.Info("AddBlockedRange: resource=%s, start=%s, end=%s", resourceID, req.Start, req.End)

	r, err := domain.NewTimeRange(req.Start, req.End)
	if err != nil {
		s.logger.Warn("AddBlockedRange: invalid range for resource=%s: %v", resourceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	reason := strings.TrimSpace(req.Reason)
	if len(reason) > domain.MaxBlockedRangeReasonLength {
		return nil, fmt.Errorf("%w: reason is too long (max %d)", ErrInvalidInput, domain.MaxBlockedRangeReasonLength)
	}

	if _, err := s.getResource(ctx, "AddBlockedRange", resourceID); err != nil {
		return nil, err
	}

	block, err := s.blockedRepo.CreateBlockedRange(ctx, domain.BlockedRange{
		ResourceID: resourceID,
		Range:      r,
		Reason:     reason,
	})
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		s.logger.Error("AddBlockedRange: repository error for resource=%s: %v", resourceID, err)
		return nil, fmt.Errorf("%w: AddBlockedRange - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddBlockedRange: created block id=%s for resource=%s", block.ID, resourceID)
	return models.FromDomainBlockedRange(block), nil
}

// RemoveBlockedRange удаляет блокировку времени ресурса
func (s *Service) RemoveBlockedRange(ctx context.Context, resourceID, blockID string) error {
	s.logger.Info("RemoveBlockedRange: resource=%s, block=%s", resourceID, blockID)

	if strings.TrimSpace(blockID) == "" {
		return fmt.Errorf("%w: block id is required", ErrInvalidInput)
	}

	if err := s.blockedRepo.DeleteBlockedRange(ctx, resourceID, blockID); err != nil {
		if errors.Is(err, domain.ErrBlockedRangeNotFound) {
			s.logger.Warn("RemoveBlockedRange: block id=%s not found for resource=%s", blockID, resourceID)
			return ErrBlockedRangeNotFound
		}
		s.logger.Error("RemoveBlockedRange: repository error: %v", err)
		return fmt.Errorf("%w: RemoveBlockedRange - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) getResource(ctx context.Context, op, resourceID string) (*domain.Resource, error) {
	if strings.TrimSpace(resourceID) == "" {
		return nil, fmt.Errorf("%w: resource id is required", ErrInvalidInput)
	}

	resource, err := s.resourceRepo.GetResource(ctx, resourceID)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			s.logger.Warn("%s: resource id=%s not found", op, resourceID)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("%s: repository error for resource id=%s: %v", op, resourceID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return resource, nil
}

// validateSchedule проверяет часовой пояс, шаг сетки и рабочие часы
func validateSchedule(resource *domain.Resource) error {
	if resource.Timezone == "" {
		return fmt.Errorf("%w: timezone is required", ErrInvalidSchedule)
	}
	if _, err := resource.Location(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	if resource.SlotIntervalMinutes < domain.MinSlotIntervalMinutes || resource.SlotIntervalMinutes > domain.MaxSlotIntervalMinutes {
		return fmt.Errorf("%w: slotIntervalMinutes must be between %d and %d",
			ErrInvalidSchedule, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}

	if err := resource.WorkingHours.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	return nil
}
