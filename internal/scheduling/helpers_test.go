package scheduling

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// wednesday 2025-10-15
var testDate = Date{Year: 2025, Month: time.October, Day: 15}

func at(hour, minute int) time.Time {
	return time.Date(2025, 10, 15, hour, minute, 0, 0, time.UTC)
}

func rng(h1, m1, h2, m2 int) domain.TimeRange {
	return domain.TimeRange{Start: at(h1, m1), End: at(h2, m2)}
}

func day(open, closeAt string) domain.DaySchedule {
	o := types.MustTimeString(open)
	c := types.MustTimeString(closeAt)
	return domain.DaySchedule{Open: &o, Close: &c}
}

func newResource(tz string) *domain.Resource {
	r := &domain.Resource{ID: "res-1", Timezone: tz, SlotIntervalMinutes: 60}
	r.WorkingHours[time.Wednesday] = day("09:00", "18:00")
	return r
}

func booking(id string, r domain.TimeRange, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{ID: id, ResourceID: "res-1", Range: r, Status: status}
}
