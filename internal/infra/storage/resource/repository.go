package resource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// Repository репозиторий ресурсов (мастеров) и их рабочих часов
//
// Рабочие часы хранятся в resource_working_hours по строке на рабочий день недели;
// отсутствие строки означает выходной.
type Repository struct {
	db        DBExecutor
	txManager TransactionManager
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db DBExecutor, txManager TransactionManager) *Repository {
	return &Repository{db: db, txManager: txManager}
}

// GetResource получает ресурс вместе с рабочими часами.
// Оба запроса выполняются в одной read-only транзакции, чтобы не смешать старый и новый график.
func (r *Repository) GetResource(ctx context.Context, id string) (*domain.Resource, error) {
	var resource domain.Resource

	err := r.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, r.db)

		query, args, err := psqlbuilder.Select(
			"id",
			"name",
			"timezone",
			"slot_interval_minutes",
			"created_at",
			"updated_at",
		).
			From("resources").
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: GetResource - build select query: %v", ErrBuildQuery, err)
		}

		var createdAt, updatedAt sql.NullTime

		err = executor.QueryRowContext(txCtx, query, args...).Scan(
			&resource.ID,
			&resource.Name,
			&resource.Timezone,
			&resource.SlotIntervalMinutes,
			&createdAt,
			&updatedAt,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrResourceNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: GetResource - scan resource: %v", ErrScanRow, err)
		}

		resource.CreatedAt = createdAt.Time
		resource.UpdatedAt = updatedAt.Time

		hours, err := r.getWorkingHours(txCtx, executor, id)
		if err != nil {
			return err
		}
		resource.WorkingHours = hours
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &resource, nil
}

func (r *Repository) getWorkingHours(ctx context.Context, executor DBExecutor, resourceID string) (domain.WorkingHours, error) {
	var hours domain.WorkingHours

	query, args, err := psqlbuilder.Select("weekday", "open_time", "close_time").
		From("resource_working_hours").
		Where(squirrel.Eq{"resource_id": resourceID}).
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return hours, fmt.Errorf("%w: getWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return hours, fmt.Errorf("%w: getWorkingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var weekday int
		var open, closeAt types.TimeString
		if err := rows.Scan(&weekday, &open, &closeAt); err != nil {
			return hours, fmt.Errorf("%w: getWorkingHours - scan row: %v", ErrScanRow, err)
		}
		if weekday < int(time.Sunday) || weekday > int(time.Saturday) {
			return hours, fmt.Errorf("%w: getWorkingHours - weekday %d out of range", ErrScanRow, weekday)
		}
		hours[weekday] = domain.DaySchedule{Open: &open, Close: &closeAt}
	}
	if err := rows.Err(); err != nil {
		return hours, fmt.Errorf("%w: getWorkingHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}

// UpdateSchedule заменяет часовой пояс, шаг сетки и рабочие часы ресурса в одной транзакции
func (r *Repository) UpdateSchedule(ctx context.Context, resource *domain.Resource) (*domain.Resource, error) {
	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, r.db)

		query, args, err := psqlbuilder.Update("resources").
			Set("timezone", resource.Timezone).
			Set("slot_interval_minutes", resource.SlotIntervalMinutes).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": resource.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(txCtx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: UpdateSchedule - get rows affected: %v", ErrExecQuery, err)
		}
		if affected == 0 {
			return domain.ErrResourceNotFound
		}

		query, args, err = psqlbuilder.Delete("resource_working_hours").
			Where(squirrel.Eq{"resource_id": resource.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: UpdateSchedule - build delete query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(txCtx, query, args...); err != nil {
			return fmt.Errorf("%w: UpdateSchedule - delete working hours: %v", ErrExecQuery, err)
		}

		insert := psqlbuilder.Insert("resource_working_hours").
			Columns("resource_id", "weekday", "open_time", "close_time")
		openDays := 0
		for weekday, day := range resource.WorkingHours {
			if day.IsClosed() {
				continue
			}
			insert = insert.Values(resource.ID, weekday, day.Open.String(), day.Close.String())
			openDays++
		}
		if openDays == 0 {
			return nil
		}

		query, args, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("%w: UpdateSchedule - build insert query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(txCtx, query, args...); err != nil {
			return fmt.Errorf("%w: UpdateSchedule - insert working hours: %v", ErrExecQuery, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetResource(ctx, resource.ID)
}
