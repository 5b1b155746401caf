package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"resource_id",
	"service_id",
	"client_id",
	"start_time",
	"end_time",
	"buffer_minutes",
	"status",
	"cancellation_reason",
	"canceled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db        DBExecutor
	txManager TransactionManager
	newID     func() string
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, txManager TransactionManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
		newID:     uuid.NewString,
	}
}

// InsertBookingIfFree атомарно проверяет, что занимаемый диапазон свободен, и вставляет бронирование.
//
// Внутри транзакции с изоляцией по умолчанию:
//  1. SELECT ... FOR UPDATE активных бронирований ресурса, пересекающих [start, end+buffer)
//  2. если найдено - domain.ErrSlotTaken
//  3. INSERT
//
// Параллельную вставку, проскочившую шаг 1, отсекает EXCLUDE constraint (23P01),
// он приводится к domain.ErrSlotTaken. Ошибки сериализации и дедлоки (40001, 40P01)
// конфликтом не являются и возвращаются как ErrSerializationFailure.
func (r *Repository) InsertBookingIfFree(ctx context.Context, nb domain.NewBooking) (*domain.Booking, error) {
	var created *domain.Booking

	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, r.db)
		occupied := nb.Occupied()

		query, args, err := psqlbuilder.Select("id").
			From("bookings").
			Where(squirrel.Eq{"resource_id": nb.ResourceID}).
			Where(squirrel.Eq{"status": activeStatuses()}).
			Where(squirrel.Lt{"start_time": occupied.End}).
			Where(squirrel.Gt{"occupied_until": occupied.Start}).
			Limit(1).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: InsertBookingIfFree - build select query: %v", ErrBuildQuery, err)
		}

		var existingID string
		err = executor.QueryRowContext(txCtx, query, args...).Scan(&existingID)
		switch {
		case err == nil:
			return fmt.Errorf("%w: overlaps booking id=%s", domain.ErrSlotTaken, existingID)
		case errors.Is(err, sql.ErrNoRows):
			// диапазон свободен
		case isSerializationFailure(err):
			return fmt.Errorf("%w: InsertBookingIfFree - select overlapping: %v", ErrSerializationFailure, err)
		default:
			return fmt.Errorf("%w: InsertBookingIfFree - select overlapping: %v", ErrExecQuery, err)
		}

		booking := &domain.Booking{
			ID:            r.newID(),
			ResourceID:    nb.ResourceID,
			ServiceID:     nb.ServiceID,
			ClientID:      nb.ClientID,
			Range:         nb.Range,
			BufferMinutes: nb.BufferMinutes,
			Status:        nb.Status,
		}

		query, args, err = psqlbuilder.Insert("bookings").
			Columns(
				"id",
				"resource_id",
				"service_id",
				"client_id",
				"start_time",
				"end_time",
				"buffer_minutes",
				"occupied_until",
				"status",
			).
			Values(
				booking.ID,
				booking.ResourceID,
				booking.ServiceID,
				booking.ClientID,
				booking.Range.Start,
				booking.Range.End,
				booking.BufferMinutes,
				occupied.End,
				string(booking.Status),
			).
			Suffix("RETURNING created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: InsertBookingIfFree - build insert query: %v", ErrBuildQuery, err)
		}

		var createdAt, updatedAt sql.NullTime
		err = executor.QueryRowContext(txCtx, query, args...).Scan(&createdAt, &updatedAt)
		if err != nil {
			if isSlotTaken(err) {
				return fmt.Errorf("%w: %v", domain.ErrSlotTaken, err)
			}
			if isSerializationFailure(err) {
				return fmt.Errorf("%w: InsertBookingIfFree - execute insert: %v", ErrSerializationFailure, err)
			}
			return fmt.Errorf("%w: InsertBookingIfFree - execute insert: %v", ErrExecQuery, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time
		created = booking
		return nil
	})

	if err != nil {
		// Отложенная проверка constraint может сработать на COMMIT
		if !errors.Is(err, domain.ErrSlotTaken) && isSlotTaken(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrSlotTaken, err)
		}
		if !errors.Is(err, ErrSerializationFailure) && isSerializationFailure(err) {
			return nil, fmt.Errorf("%w: %v", ErrSerializationFailure, err)
		}
		return nil, err
	}

	return created, nil
}

// GetBooking получает бронирование по ID
func (r *Repository) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBooking - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBooking - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListBookings получает бронирования ресурса, занимаемый диапазон которых пересекает [From, To)
// Отмененные включаются только при IncludeCanceled. Сортировка по времени начала.
func (r *Repository) ListBookings(ctx context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"resource_id": filter.ResourceID}).
		Where(squirrel.Lt{"start_time": filter.To}).
		Where(squirrel.Gt{"occupied_until": filter.From}).
		OrderBy("start_time ASC")

	if !filter.IncludeCanceled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatuses()})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookings - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings("ListBookings", rows)
}

// ListClientBookings получает историю бронирований клиента, новые первыми.
// Опционально фильтрует по статусу.
func (r *Repository) ListClientBookings(ctx context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"client_id": filter.ClientID}).
		OrderBy("start_time DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListClientBookings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListClientBookings - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings("ListClientBookings", rows)
}

func scanBookings(op string, rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}
	return bookings, nil
}

// UpdateBookingStatus меняет статус условным UPDATE ... WHERE status = from.
// Если строка не обновилась, различает отсутствие бронирования и недопустимый переход.
func (r *Repository) UpdateBookingStatus(
	ctx context.Context,
	id string,
	from, to domain.BookingStatus,
	reason *string,
) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", string(to)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(from)})

	if to == domain.StatusCanceled {
		updateBuilder = updateBuilder.
			Set("cancellation_reason", reason).
			Set("canceled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateBookingStatus - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == nil {
		return booking, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: UpdateBookingStatus - execute update: %v", ErrExecQuery, err)
	}

	if _, getErr := r.GetBooking(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("%w: booking id=%s is not %s", domain.ErrInvalidTransition, id, from)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var status string
	var reason sql.NullString
	var canceledAt, createdAt, updatedAt sql.NullTime
	var start, end time.Time

	err := row.Scan(
		&booking.ID,
		&booking.ResourceID,
		&booking.ServiceID,
		&booking.ClientID,
		&start,
		&end,
		&booking.BufferMinutes,
		&status,
		&reason,
		&canceledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Range = domain.TimeRange{Start: start.UTC(), End: end.UTC()}
	booking.Status, err = domain.ParseBookingStatus(status)
	if err != nil {
		return nil, err
	}
	if reason.Valid {
		booking.CancellationReason = &reason.String
	}
	if canceledAt.Valid {
		t := canceledAt.Time.UTC()
		booking.CanceledAt = &t
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func activeStatuses() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}
