package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// GenerateSlots перечисляет возможные времена начала в свободных окнах.
//
// Курсор в каждом окне стартует с window.Start и сдвигается на slotInterval минут.
// Слот выдается, если cursor + duration + buffer <= window.End. Курсор только растет,
// поэтому первая неудача завершает обход окна.
//
// Шаг сетки не зависит от длительности услуги: соседние слоты могут
// пересекаться по фактически занимаемому времени. Непересечение гарантируется
// только для зафиксированных бронирований.
func GenerateSlots(windows []domain.TimeRange, service domain.ServiceSpec, slotIntervalMinutes int) ([]domain.Slot, error) {
	if slotIntervalMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot interval must be positive, got %d", ErrInvalidInput, slotIntervalMinutes)
	}
	if err := service.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	step := time.Duration(slotIntervalMinutes) * time.Minute
	occupied := time.Duration(service.OccupiedMinutes()) * time.Minute

	ordered := make([]domain.TimeRange, len(windows))
	copy(ordered, windows)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Start.Before(ordered[j].Start)
	})

	slots := make([]domain.Slot, 0)
	for _, window := range ordered {
		for cursor := window.Start; !cursor.Add(occupied).After(window.End); cursor = cursor.Add(step) {
			slots = append(slots, domain.Slot{Start: cursor})
		}
	}

	return slots, nil
}
