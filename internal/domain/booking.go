package domain

import (
	"fmt"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCanceled  BookingStatus = "canceled"
)

// ParseBookingStatus converts a string into a known BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch status := BookingStatus(s); status {
	case StatusPending, StatusConfirmed, StatusCanceled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Occupies returns true if a booking in this status holds the resource's time
func (s BookingStatus) Occupies() bool {
	switch s {
	case StatusPending, StatusConfirmed:
		return true
	case StatusCanceled:
		return false
	default:
		return false
	}
}

// CanTransitionTo reports whether the status machine allows s -> next
//
//	pending   -> confirmed | canceled
//	confirmed -> canceled
//	canceled  -> (none)
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCanceled
	case StatusConfirmed:
		return next == StatusCanceled
	case StatusCanceled:
		return false
	default:
		return false
	}
}

// Booking represents a committed appointment of a client with a resource
type Booking struct {
	ID         string
	ResourceID string
	ServiceID  string
	ClientID   string

	// Range время оказания услуги
	Range TimeRange
	// BufferMinutes обязательный простой после услуги
	BufferMinutes int

	Status BookingStatus

	CancellationReason *string
	CanceledAt         *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies the resource's time
func (b *Booking) IsActive() bool {
	return b.Status.Occupies()
}

// Occupied returns the range the booking blocks: service time plus buffer
func (b *Booking) Occupied() TimeRange {
	return OccupiedRange(b.Range, b.BufferMinutes)
}

// CanTransitionTo returns true if the booking may move to next status
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	return b.Status.CanTransitionTo(next)
}

// OccupiedRange расширяет интервал услуги на буфер
func OccupiedRange(r TimeRange, bufferMinutes int) TimeRange {
	return TimeRange{Start: r.Start, End: r.End.Add(time.Duration(bufferMinutes) * time.Minute)}
}

// NewBooking данные для атомарной вставки бронирования
type NewBooking struct {
	ResourceID    string
	ServiceID     string
	ClientID      string
	Range         TimeRange
	BufferMinutes int
	Status        BookingStatus
}

// Occupied диапазон, который займет бронирование
func (n NewBooking) Occupied() TimeRange {
	return OccupiedRange(n.Range, n.BufferMinutes)
}

// ResourceBookingsFilter фильтр для получения бронирований ресурса
type ResourceBookingsFilter struct {
	ResourceID      string    // Обязательный параметр
	From            time.Time // Начало периода (включительно)
	To              time.Time // Конец периода (не включительно)
	IncludeCanceled bool      // Включать ли отмененные бронирования
}

// ClientBookingsFilter фильтр для получения истории бронирований клиента
type ClientBookingsFilter struct {
	ClientID string         // Обязательный параметр
	Status   *BookingStatus // Опционально: только бронирования в этом статусе
}
