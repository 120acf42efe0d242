package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

var reservationColumns = []string{
	"id",
	"user_id",
	"court_id",
	"date",
	"hours",
	"total_price",
	"status",
	"status_message",
	"created_at",
	"approved_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Вызывается внутри сериализуемой транзакции после проверки занятости часов:
// проверка и вставка должны быть одной атомарной операцией.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"user_id",
			"court_id",
			"date",
			"hours",
			"total_price",
			"status",
			"status_message",
		).
		Values(
			res.UserID,
			res.CourtID,
			res.Date,
			pq.Array(hoursToInt64(res.Hours)),
			res.TotalPrice,
			res.Status,
			res.StatusMessage,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции блокирует строку (FOR UPDATE) для сериализации
// конкурентных переходов статуса одного бронирования.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// ListByCourtAndDate получает бронирования корта с фильтрацией.
// При OnlyClaiming возвращает только бронирования, удерживающие часы
// (requested, payment_pending, paid). Внутри транзакции с фильтром по дате
// блокирует строки (FOR UPDATE) - используется проверкой занятости слотов.
func (r *Repository) ListByCourtAndDate(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"court_id": filter.CourtID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"date": *filter.Date})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.OnlyClaiming {
		claiming := make([]string, len(domain.ClaimingStatuses))
		for i, s := range domain.ClaimingStatuses {
			claiming[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": claiming})
	}

	selectBuilder = selectBuilder.OrderBy("date ASC, created_at ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCourtAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCourtAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListByUser получает бронирования пользователя, опционально фильтруя по статусу
func (r *Repository) ListByUser(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC, created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListPaymentPending получает все бронирования в статусе payment_pending.
// Используется планировщиком для восстановления дедлайнов после рестарта
// и для календарного обхода просроченных бронирований.
func (r *Repository) ListPaymentPending(ctx context.Context) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"status": domain.StatusPaymentPending}).
		OrderBy("approved_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListPaymentPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPaymentPending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Approve переводит бронирование requested -> payment_pending.
// Условный UPDATE: если статус уже не requested, возвращает ErrNoTransition -
// из двух конкурентных одобрений выигрывает ровно одно.
func (r *Repository) Approve(ctx context.Context, id int64, approvedAt time.Time) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusPaymentPending).
		Set("approved_at", approvedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusRequested}).
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Approve - build update query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNoTransition
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Approve - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// Cancel переводит бронирование в cancelled из любого из перечисленных статусов.
// Возвращает ErrNoTransition, если текущий статус не входит в from.
func (r *Repository) Cancel(ctx context.Context, id int64, from []domain.ReservationStatus, message string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	fromStatuses := make([]string, len(from))
	for i, s := range from {
		fromStatuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("status_message", message).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": fromStatuses}).
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNoTransition
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// MarkPaid переводит бронирование payment_pending -> paid, но только пока
// платёжное окно не истекло: approved_at должен быть строго позже approvedAfter
// (= now - окно). Просроченное или уже изменённое бронирование даёт ErrNoTransition.
func (r *Repository) MarkPaid(ctx context.Context, id int64, approvedAfter time.Time) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusPaid).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPaymentPending}).
		Where(squirrel.Gt{"approved_at": approvedAfter}).
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNoTransition
	}
	if err != nil {
		return nil, fmt.Errorf("%w: MarkPaid - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// Expire переводит просроченное бронирование payment_pending -> cancelled.
// Условие approved_at <= approvedBefore (= now - окно) гарантирует, что
// вовремя оплаченное бронирование истечь не может; конкурентные попытки
// истечения дают ровно один успешный переход.
func (r *Repository) Expire(ctx context.Context, id int64, approvedBefore time.Time, message string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("status_message", message).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPaymentPending}).
		Where(squirrel.LtOrEq{"approved_at": approvedBefore}).
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Expire - build update query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNoTransition
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Expire - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// columnList возвращает список колонок для RETURNING
func columnList() string {
	list := reservationColumns[0]
	for _, c := range reservationColumns[1:] {
		list += ", " + c
	}
	return list
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну строку в бронирование
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var hours pq.Int64Array
	var statusMessage sql.NullString
	var createdAt, approvedAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.CourtID,
		&res.Date,
		&hours,
		&res.TotalPrice,
		&res.Status,
		&statusMessage,
		&createdAt,
		&approvedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Hours = int64ToHours(hours)
	if statusMessage.Valid {
		res.StatusMessage = &statusMessage.String
	}
	res.CreatedAt = createdAt.Time
	if approvedAt.Valid {
		res.ApprovedAt = &approvedAt.Time
	}
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// hoursToInt64 конвертирует часы в формат pq.Array
func hoursToInt64(hours []int) []int64 {
	out := make([]int64, len(hours))
	for i, h := range hours {
		out[i] = int64(h)
	}
	return out
}

// int64ToHours конвертирует часы из формата pq.Int64Array
func int64ToHours(hours pq.Int64Array) []int {
	out := make([]int, len(hours))
	for i, h := range hours {
		out[i] = int(h)
	}
	return out
}
