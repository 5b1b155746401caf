package domain

import (
	"fmt"
	"time"
)

// TimeRange полуоткрытый интервал [Start, End) в UTC
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange создает интервал, нормализуя границы в UTC
// Интервалы нулевой и отрицательной длины отклоняются
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, fmt.Errorf("%w: [%s, %s)", ErrInvalidTimeRange,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeRange{Start: start.UTC(), End: end.UTC()}, nil
}

// Duration длительность интервала
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// IsValid start < end
func (r TimeRange) IsValid() bool {
	return r.Start.Before(r.End)
}

// Overlaps проверяет пересечение с другим интервалом
func (r TimeRange) Overlaps(other TimeRange) bool {
	return Overlaps(r, other)
}

// Contains проверяет, что other целиком лежит внутри r
func (r TimeRange) Contains(other TimeRange) bool {
	return !other.Start.Before(r.Start) && !other.End.After(r.End)
}

// Subtract вычитает x из r: ноль, один или два остатка (слева и справа)
func (r TimeRange) Subtract(x TimeRange) []TimeRange {
	if !Overlaps(r, x) {
		return []TimeRange{r}
	}

	rest := make([]TimeRange, 0, 2)
	if r.Start.Before(x.Start) {
		rest = append(rest, TimeRange{Start: r.Start, End: x.Start})
	}
	if x.End.Before(r.End) {
		rest = append(rest, TimeRange{Start: x.End, End: r.End})
	}
	return rest
}

func (r TimeRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
}

// Overlaps два полуоткрытых интервала пересекаются тогда и только тогда,
// когда a.Start < b.End и b.Start < a.End.
// Касание границ (a.End == b.Start) пересечением не считается:
// бронирование до 10:00 не конфликтует с бронированием с 10:00.
func Overlaps(a, b TimeRange) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}
