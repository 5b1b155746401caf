package booking

import (
	"context"

	"github.com/m04kA/SMC-BookingEngine/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TransactionManager выполняет функцию в транзакции
// Поддерживает *txmanager.TransactionManager
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
