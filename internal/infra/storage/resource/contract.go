package resource

import (
	"context"

	"github.com/m04kA/SMC-BookingEngine/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor

// TransactionManager выполняет функцию в транзакции
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
