package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// DaySchedule рабочие часы на один день недели; nil Open/Close - выходной
type DaySchedule struct {
	Open  *types.TimeString
	Close *types.TimeString
}

// IsClosed returns true if the resource does not work that day
func (d DaySchedule) IsClosed() bool {
	return d.Open == nil || d.Close == nil
}

// Validate checks that close is after open
func (d DaySchedule) Validate() error {
	if d.Open == nil && d.Close == nil {
		return nil
	}
	if d.Open == nil || d.Close == nil {
		return fmt.Errorf("%w: both open and close are required", ErrInvalidWorkingHours)
	}
	if err := d.Open.Validate(); err != nil {
		return fmt.Errorf("%w: open: %v", ErrInvalidWorkingHours, err)
	}
	if err := d.Close.Validate(); err != nil {
		return fmt.Errorf("%w: close: %v", ErrInvalidWorkingHours, err)
	}
	if !d.Close.IsAfter(*d.Open) {
		return fmt.Errorf("%w: close %s must be after open %s", ErrInvalidWorkingHours, d.Close, d.Open)
	}
	return nil
}

// WorkingHours расписание по дням недели, индекс - time.Weekday
type WorkingHours [7]DaySchedule

// ForWeekday returns the schedule for the weekday
func (w WorkingHours) ForWeekday(day time.Weekday) DaySchedule {
	if day < time.Sunday || day > time.Saturday {
		return DaySchedule{}
	}
	return w[day]
}

// Validate checks every day of the week
func (w WorkingHours) Validate() error {
	for day, schedule := range w {
		if err := schedule.Validate(); err != nil {
			return fmt.Errorf("%s: %w", time.Weekday(day), err)
		}
	}
	return nil
}

// Resource bookable professional with working hours and a business timezone
type Resource struct {
	ID                  string
	Name                string
	Timezone            string
	SlotIntervalMinutes int
	WorkingHours        WorkingHours
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Location loads the resource's business timezone
func (r *Resource) Location() (*time.Location, error) {
	if r.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidWorkingHours, r.Timezone)
	}
	return loc, nil
}

// SlotInterval returns the display granularity, falling back to the default
func (r *Resource) SlotInterval() int {
	if r.SlotIntervalMinutes <= 0 {
		return DefaultSlotIntervalMinutes
	}
	return r.SlotIntervalMinutes
}
