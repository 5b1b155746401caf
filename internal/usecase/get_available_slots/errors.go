package get_available_slots

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = fmt.Errorf("%w: resource not found", ErrInvalidInput)

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("%w: service not found", ErrInvalidInput)

	// ErrStoreUnavailable возвращается, когда хранилище или каталог недоступны
	ErrStoreUnavailable = errors.New("get_available_slots: store unavailable")
)
