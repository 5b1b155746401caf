package commitguard

import "errors"

var (
	// ErrInvalidInput некорректный диапазон, статус или пустые идентификаторы
	ErrInvalidInput = errors.New("commitguard: invalid input")

	// ErrConflict диапазон уже занят другим бронированием
	ErrConflict = errors.New("commitguard: booking conflict")

	// ErrStoreUnavailable хранилище не ответило или вернуло ошибку; результат записи неизвестен
	ErrStoreUnavailable = errors.New("commitguard: store unavailable")
)
