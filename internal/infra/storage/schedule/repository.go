package schedule

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

var scheduleColumns = []string{
	"id",
	"open_hour",
	"close_hour",
	"break_hours",
	"closed_weekdays",
	"closed_dates",
	"updated_at",
}

// Repository репозиторий расписаний площадок.
// Расписание хранится в таблице fields: одна площадка - один календарь,
// корты площадки его наследуют.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByFieldID получает расписание площадки
func (r *Repository) GetByFieldID(ctx context.Context, fieldID int64) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("fields").
		Where(squirrel.Eq{"id": fieldID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByFieldID - build select query: %v", ErrBuildQuery, err)
	}

	cfg, err := scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFieldID - scan schedule: %v", ErrScanRow, err)
	}

	return cfg, nil
}

// GetByCourtID получает расписание площадки, которой принадлежит корт
func (r *Repository) GetByCourtID(ctx context.Context, courtID int64) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"f.id",
		"f.open_hour",
		"f.close_hour",
		"f.break_hours",
		"f.closed_weekdays",
		"f.closed_dates",
		"f.updated_at",
	).
		From("fields f").
		Join("courts c ON c.field_id = f.id").
		Where(squirrel.Eq{"c.id": courtID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourtID - build select query: %v", ErrBuildQuery, err)
	}

	cfg, err := scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourtID - scan schedule: %v", ErrScanRow, err)
	}

	return cfg, nil
}

// Update обновляет расписание площадки
func (r *Repository) Update(ctx context.Context, cfg *domain.ScheduleConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	closedDates := make([]string, len(cfg.ClosedDates))
	for i, d := range cfg.ClosedDates {
		closedDates[i] = d.Format(domain.DateFormat)
	}

	query, args, err := psqlbuilder.Update("fields").
		Set("open_hour", cfg.OpenHour).
		Set("close_hour", cfg.CloseHour).
		Set("break_hours", pq.Array(intsToInt64(cfg.BreakHours))).
		Set("closed_weekdays", pq.Array(intsToInt64(cfg.ClosedWeekdays))).
		Set("closed_dates", pq.Array(closedDates)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": cfg.FieldID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSchedule сканирует строку в конфигурацию расписания.
// Закрытые даты хранятся как text[] в формате YYYY-MM-DD.
func scanSchedule(row rowScanner) (*domain.ScheduleConfig, error) {
	var cfg domain.ScheduleConfig
	var breakHours, closedWeekdays pq.Int64Array
	var closedDates pq.StringArray
	var updatedAt sql.NullTime

	err := row.Scan(
		&cfg.FieldID,
		&cfg.OpenHour,
		&cfg.CloseHour,
		&breakHours,
		&closedWeekdays,
		&closedDates,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	cfg.BreakHours = int64ToInts(breakHours)
	cfg.ClosedWeekdays = int64ToInts(closedWeekdays)
	cfg.ClosedDates = make([]time.Time, 0, len(closedDates))
	for _, s := range closedDates {
		d, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, fmt.Errorf("invalid closed date %q: %v", s, err)
		}
		cfg.ClosedDates = append(cfg.ClosedDates, d)
	}
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

func intsToInt64(in []int) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = int64(v)
	}
	return out
}

func int64ToInts(in pq.Int64Array) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}
