package domain

import "errors"

// Ошибки доменного уровня, общие для всех реализаций хранилища
var (
	// ErrInvalidTimeRange возвращается, если start >= end
	ErrInvalidTimeRange = errors.New("domain: invalid time range, start must be before end")

	// ErrInvalidTransition возвращается при недопустимой смене статуса бронирования
	ErrInvalidTransition = errors.New("domain: invalid booking status transition")

	// ErrInvalidStatus возвращается при неизвестном статусе бронирования
	ErrInvalidStatus = errors.New("domain: invalid booking status")

	// ErrInvalidWorkingHours возвращается при некорректном расписании (close <= open)
	ErrInvalidWorkingHours = errors.New("domain: invalid working hours")

	// ErrInvalidServiceSpec возвращается при некорректных параметрах услуги
	ErrInvalidServiceSpec = errors.New("domain: invalid service spec")

	// ErrSlotTaken возвращается хранилищем, если диапазон уже занят другим бронированием
	ErrSlotTaken = errors.New("domain: time range already occupied")

	// ErrResourceNotFound ресурс (мастер) не найден
	ErrResourceNotFound = errors.New("domain: resource not found")

	// ErrServiceNotFound услуга не найдена
	ErrServiceNotFound = errors.New("domain: service not found")

	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("domain: booking not found")

	// ErrBlockedRangeNotFound блокировка времени не найдена
	ErrBlockedRangeNotFound = errors.New("domain: blocked range not found")
)
