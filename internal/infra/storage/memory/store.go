// Package memory хранилище в памяти процесса.
// Реализует те же порты, что и Postgres-репозитории, и используется
// в тестах и при storage.driver = "memory".
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// Store потокобезопасное хранилище ресурсов, услуг, блокировок и бронирований
type Store struct {
	mu        sync.RWMutex
	resources map[string]domain.Resource
	services  map[string]domain.ServiceSpec
	blocks    map[string]domain.BlockedRange
	bookings  map[string]domain.Booking

	// resourceLocks сериализует вставки бронирований одного ресурса
	resourceLocks sync.Map

	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		resources: make(map[string]domain.Resource),
		services:  make(map[string]domain.ServiceSpec),
		blocks:    make(map[string]domain.BlockedRange),
		bookings:  make(map[string]domain.Booking),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) lockResource(resourceID string) func() {
	value, _ := s.resourceLocks.LoadOrStore(resourceID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// PutResource добавляет или заменяет ресурс (используется для начального наполнения)
func (s *Store) PutResource(resource domain.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if resource.CreatedAt.IsZero() {
		resource.CreatedAt = now
	}
	resource.UpdatedAt = now
	s.resources[resource.ID] = resource
}

// PutService добавляет или заменяет услугу
func (s *Store) PutService(service domain.ServiceSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[service.ID] = service
}

// GetResource возвращает ресурс по ID
func (s *Store) GetResource(ctx context.Context, id string) (*domain.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	resource, ok := s.resources[id]
	if !ok {
		return nil, domain.ErrResourceNotFound
	}
	return &resource, nil
}

// UpdateSchedule заменяет часовой пояс, шаг сетки и рабочие часы ресурса
func (s *Store) UpdateSchedule(ctx context.Context, resource *domain.Resource) (*domain.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.resources[resource.ID]
	if !ok {
		return nil, domain.ErrResourceNotFound
	}

	current.Timezone = resource.Timezone
	current.SlotIntervalMinutes = resource.SlotIntervalMinutes
	current.WorkingHours = resource.WorkingHours
	current.UpdatedAt = s.now()
	s.resources[current.ID] = current

	return &current, nil
}

// GetService возвращает услугу по ID
func (s *Store) GetService(ctx context.Context, id string) (*domain.ServiceSpec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	service, ok := s.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return &service, nil
}

// ListBlockedRanges возвращает блокировки ресурса, пересекающие [from, to)
func (s *Store) ListBlockedRanges(ctx context.Context, resourceID string, from, to time.Time) ([]domain.BlockedRange, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	period := domain.TimeRange{Start: from, End: to}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.BlockedRange, 0)
	for _, block := range s.blocks {
		if block.ResourceID != resourceID || !block.Range.Overlaps(period) {
			continue
		}
		result = append(result, block)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Range.Start.Before(result[j].Range.Start)
	})
	return result, nil
}

// CreateBlockedRange сохраняет блокировку времени
func (s *Store) CreateBlockedRange(ctx context.Context, block domain.BlockedRange) (*domain.BlockedRange, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.resources[block.ResourceID]; !ok {
		return nil, domain.ErrResourceNotFound
	}

	block.ID = uuid.NewString()
	block.CreatedAt = s.now()
	s.blocks[block.ID] = block

	return &block, nil
}

// DeleteBlockedRange удаляет блокировку ресурса
func (s *Store) DeleteBlockedRange(ctx context.Context, resourceID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	block, ok := s.blocks[id]
	if !ok || block.ResourceID != resourceID {
		return domain.ErrBlockedRangeNotFound
	}
	delete(s.blocks, id)
	return nil
}

// InsertBookingIfFree атомарно проверяет пересечение и вставляет бронирование.
// Вставки одного ресурса сериализуются мьютексом ресурса, разные ресурсы не блокируют друг друга:
// проверка идет под RLock, общий Lock берется только на запись в map.
// Между проверкой и записью бронирование ресурса может только освободить время
// (отмена), поэтому результат проверки остается верным.
func (s *Store) InsertBookingIfFree(ctx context.Context, booking domain.NewBooking) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unlock := s.lockResource(booking.ResourceID)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.overlapsActive(booking.ResourceID, booking.Occupied()) {
		return nil, domain.ErrSlotTaken
	}

	now := s.now()
	created := domain.Booking{
		ID:            uuid.NewString(),
		ResourceID:    booking.ResourceID,
		ServiceID:     booking.ServiceID,
		ClientID:      booking.ClientID,
		Range:         booking.Range,
		BufferMinutes: booking.BufferMinutes,
		Status:        booking.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.mu.Lock()
	s.bookings[created.ID] = created
	s.mu.Unlock()

	return &created, nil
}

func (s *Store) overlapsActive(resourceID string, occupied domain.TimeRange) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, existing := range s.bookings {
		if existing.ResourceID != resourceID || !existing.IsActive() {
			continue
		}
		if domain.Overlaps(occupied, existing.Occupied()) {
			return true
		}
	}
	return false
}

// GetBooking возвращает бронирование по ID
func (s *Store) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return &booking, nil
}

// ListBookings возвращает бронирования ресурса, занимаемый диапазон которых пересекает [From, To)
func (s *Store) ListBookings(ctx context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	period := domain.TimeRange{Start: filter.From, End: filter.To}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, booking := range s.bookings {
		if booking.ResourceID != filter.ResourceID {
			continue
		}
		if !filter.IncludeCanceled && !booking.IsActive() {
			continue
		}
		if !booking.Occupied().Overlaps(period) {
			continue
		}
		b := booking
		result = append(result, &b)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Range.Start.Before(result[j].Range.Start)
	})
	return result, nil
}

// ListClientBookings возвращает бронирования клиента, новые первыми
func (s *Store) ListClientBookings(ctx context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, booking := range s.bookings {
		if booking.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != nil && booking.Status != *filter.Status {
			continue
		}
		b := booking
		result = append(result, &b)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Range.Start.After(result[j].Range.Start)
	})
	return result, nil
}

// UpdateBookingStatus меняет статус, только если текущий статус равен from.
// reason сохраняется при отмене.
func (s *Store) UpdateBookingStatus(
	ctx context.Context,
	id string,
	from, to domain.BookingStatus,
	reason *string,
) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	if booking.Status != from {
		return nil, domain.ErrInvalidTransition
	}

	now := s.now()
	booking.Status = to
	booking.UpdatedAt = now
	if to == domain.StatusCanceled {
		booking.CancellationReason = reason
		booking.CanceledAt = &now
	}
	s.bookings[id] = booking

	return &booking, nil
}
