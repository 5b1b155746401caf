package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// Date календарная дата в часовом поясе ресурса
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf берет год, месяц и день из t без перевода часового пояса
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate парсит "YYYY-MM-DD"
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: date %q: %v", ErrInvalidInput, s, err)
	}
	return DateOf(t), nil
}

// Weekday день недели календарной даты
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DayBounds возвращает сутки даты в часовом поясе ресурса как UTC интервал [00:00, 24:00)
// Используется для выборки блокировок и бронирований из хранилища.
func DayBounds(resource *domain.Resource, date Date) (domain.TimeRange, error) {
	loc, err := resource.Location()
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	start := time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, loc)
	end := time.Date(date.Year, date.Month, date.Day+1, 0, 0, 0, 0, loc)
	return domain.NewTimeRange(start, end)
}

// ResolveWindows вычисляет свободные окна ресурса на дату:
// рабочие часы дня минус блокировки и активные бронирования (с буфером).
//
// Соседние окна не склеиваются. Результат отсортирован по началу.
// Пустой результат - выходной или все занято, это не ошибка.
func ResolveWindows(
	resource *domain.Resource,
	date Date,
	blocks []domain.BlockedRange,
	bookings []*domain.Booking,
) ([]domain.TimeRange, error) {
	schedule := resource.WorkingHours.ForWeekday(date.Weekday())
	if schedule.IsClosed() {
		return []domain.TimeRange{}, nil
	}

	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, date.Weekday(), err)
	}

	loc, err := resource.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	base, err := domain.NewTimeRange(
		schedule.Open.On(date.Year, date.Month, date.Day, loc),
		schedule.Close.On(date.Year, date.Month, date.Day, loc),
	)
	if err != nil {
		// Например, рабочие часы целиком попали в DST-переход
		return nil, fmt.Errorf("%w: working hours on %s: %v", ErrInvalidInput, date, err)
	}

	obstacles := make([]domain.TimeRange, 0, len(blocks)+len(bookings))
	for _, block := range blocks {
		obstacles = append(obstacles, block.Range)
	}
	for _, booking := range bookings {
		if booking == nil || !booking.IsActive() {
			continue
		}
		if booking.ResourceID != "" && booking.ResourceID != resource.ID {
			continue
		}
		obstacles = append(obstacles, booking.Occupied())
	}

	windows := []domain.TimeRange{base}
	for _, obstacle := range obstacles {
		if !obstacle.Overlaps(base) {
			continue
		}
		windows = subtractAll(windows, obstacle)
		if len(windows) == 0 {
			break
		}
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start.Before(windows[j].Start)
	})

	return windows, nil
}

func subtractAll(windows []domain.TimeRange, obstacle domain.TimeRange) []domain.TimeRange {
	result := make([]domain.TimeRange, 0, len(windows)+1)
	for _, w := range windows {
		result = append(result, w.Subtract(obstacle)...)
	}
	return result
}
