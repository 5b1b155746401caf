package domain

import "fmt"

// ServiceSpec длительность услуги и буфер после нее
type ServiceSpec struct {
	ID              string
	Name            string
	DurationMinutes int
	BufferMinutes   int
}

// Validate duration > 0, buffer >= 0
func (s ServiceSpec) Validate() error {
	if s.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidServiceSpec, s.DurationMinutes)
	}
	if s.BufferMinutes < 0 {
		return fmt.Errorf("%w: buffer must not be negative, got %d", ErrInvalidServiceSpec, s.BufferMinutes)
	}
	return nil
}

// OccupiedMinutes duration + buffer
func (s ServiceSpec) OccupiedMinutes() int {
	return s.DurationMinutes + s.BufferMinutes
}
