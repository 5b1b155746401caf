package domain

import "time"

// Slot предлагаемое (не резервирующее) время начала бронирования
type Slot struct {
	Start time.Time
}

// Range returns the service range the slot would occupy
func (s Slot) Range(durationMinutes int) TimeRange {
	return TimeRange{Start: s.Start, End: s.Start.Add(time.Duration(durationMinutes) * time.Minute)}
}
