package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = fmt.Errorf("%w: resource not found", ErrInvalidInput)

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("%w: service not found", ErrInvalidInput)

	// ErrOutsideSchedule возвращается, когда слот не помещается в рабочие часы или попадает на блокировку
	ErrOutsideSchedule = fmt.Errorf("%w: slot is outside working hours", ErrInvalidInput)

	// ErrConflict возвращается, когда время уже занято другим бронированием
	ErrConflict = errors.New("create_booking: slot already booked")

	// ErrStoreUnavailable возвращается при недоступности хранилища или каталога
	ErrStoreUnavailable = errors.New("create_booking: store unavailable")
)
