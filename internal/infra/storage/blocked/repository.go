package blocked

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/psqlbuilder"
)

// Repository репозиторий блокировок времени ресурса (отпуск, внешние события)
type Repository struct {
	db    dbmetrics.DBExecutor
	newID func() string
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db, newID: uuid.NewString}
}

// ListBlockedRanges возвращает блокировки ресурса, пересекающие [from, to)
func (r *Repository) ListBlockedRanges(ctx context.Context, resourceID string, from, to time.Time) ([]domain.BlockedRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "resource_id", "start_time", "end_time", "reason", "created_at").
		From("blocked_ranges").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedRanges - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedRanges - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]domain.BlockedRange, 0)
	for rows.Next() {
		var block domain.BlockedRange
		var start, end time.Time
		var reason sql.NullString
		var createdAt sql.NullTime

		if err := rows.Scan(&block.ID, &block.ResourceID, &start, &end, &reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlockedRanges - scan row: %v", ErrScanRow, err)
		}

		block.Range = domain.TimeRange{Start: start.UTC(), End: end.UTC()}
		block.Reason = reason.String
		block.CreatedAt = createdAt.Time
		blocks = append(blocks, block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedRanges - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// CreateBlockedRange сохраняет блокировку времени
func (r *Repository) CreateBlockedRange(ctx context.Context, block domain.BlockedRange) (*domain.BlockedRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	block.ID = r.newID()

	query, args, err := psqlbuilder.Insert("blocked_ranges").
		Columns("id", "resource_id", "start_time", "end_time", "reason").
		Values(block.ID, block.ResourceID, block.Range.Start, block.Range.End, block.Reason).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedRange - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("%w: CreateBlockedRange - execute insert: %v", ErrExecQuery, err)
	}
	block.CreatedAt = createdAt.Time

	return &block, nil
}

// DeleteBlockedRange удаляет блокировку ресурса
func (r *Repository) DeleteBlockedRange(ctx context.Context, resourceID, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_ranges").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"resource_id": resourceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedRange - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedRange - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedRange - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return domain.ErrBlockedRangeNotFound
	}

	return nil
}
