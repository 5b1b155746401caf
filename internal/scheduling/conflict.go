package scheduling

import (
	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// HasConflict проверяет, пересекается ли candidate с активными бронированиями ресурса.
// candidate - занимаемый диапазон (услуга + буфер), у бронирований берется Occupied().
//
// Список бронирований может быть устаревшим, поэтому результат - только быстрая
// предварительная проверка; окончательное решение принимает commit guard.
func HasConflict(candidate domain.TimeRange, resourceID string, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		if booking == nil || !booking.IsActive() {
			continue
		}
		if booking.ResourceID != resourceID {
			continue
		}
		if domain.Overlaps(candidate, booking.Occupied()) {
			return true
		}
	}
	return false
}

// FilterConflicting убирает слоты, которые конфликтуют с бронированиями
func FilterConflicting(
	slots []domain.Slot,
	service domain.ServiceSpec,
	resourceID string,
	bookings []*domain.Booking,
) []domain.Slot {
	result := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		candidate := domain.OccupiedRange(slot.Range(service.DurationMinutes), service.BufferMinutes)
		if HasConflict(candidate, resourceID, bookings) {
			continue
		}
		result = append(result, slot)
	}
	return result
}
