package booking

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrSerializationFailure возвращается, когда PostgreSQL откатил транзакцию из-за конкурентного доступа.
	// Это не конфликт бронирований: запрос можно повторить.
	ErrSerializationFailure = errors.New("booking.repository: serialization failure, retry")
)

// SQLSTATE коды PostgreSQL
const (
	pqExclusionViolation   = "23P01" // сработал EXCLUDE constraint на bookings
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

// isSlotTaken проверяет, что ошибка PostgreSQL означает конфликт бронирований
func isSlotTaken(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqExclusionViolation
}

// isSerializationFailure проверяет, что транзакцию откатили из-за конкурентного доступа
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pqSerializationFailure || pqErr.Code == pqDeadlockDetected
}
