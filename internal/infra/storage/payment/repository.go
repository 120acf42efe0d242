package payment

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

var paymentColumns = []string{
	"id",
	"reservation_id",
	"amount",
	"outcome",
	"method",
	"recorded_at",
}

// Repository репозиторий журнала платежей.
// Записи только добавляются, обновления и удаления не поддерживаются.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в журнал платежей
func (r *Repository) Create(ctx context.Context, record *domain.PaymentRecord) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payment_records").
		Columns(paymentColumns...).
		Values(
			record.ID,
			record.ReservationID,
			record.Amount,
			string(record.Outcome),
			record.Method,
			record.RecordedAt,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListByReservationID получает записи журнала по брони в порядке добавления
func (r *Repository) ListByReservationID(ctx context.Context, reservationID int64) ([]domain.PaymentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payment_records").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("recorded_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByReservationID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByReservationID - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]domain.PaymentRecord, 0)
	for rows.Next() {
		var rec domain.PaymentRecord
		var outcome string

		err = rows.Scan(
			&rec.ID,
			&rec.ReservationID,
			&rec.Amount,
			&outcome,
			&rec.Method,
			&rec.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByReservationID - scan record: %v", ErrScanRow, err)
		}

		rec.Outcome = domain.PaymentOutcome(outcome)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByReservationID - iterate rows: %v", ErrExecQuery, err)
	}

	return records, nil
}
