package court

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с кортами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория кортов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает корт по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"field_id",
		"name",
		"price_per_hour",
		"court_type",
		"created_at",
		"updated_at",
	).
		From("courts").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var court domain.Court
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&court.ID,
		&court.FieldID,
		&court.Name,
		&court.PricePerHour,
		&court.CourtType,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan court: %v", ErrScanRow, err)
	}

	court.CreatedAt = createdAt.Time
	court.UpdatedAt = updatedAt.Time

	return &court, nil
}

// ListByFieldID получает все корты площадки
func (r *Repository) ListByFieldID(ctx context.Context, fieldID int64) ([]*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"field_id",
		"name",
		"price_per_hour",
		"court_type",
		"created_at",
		"updated_at",
	).
		From("courts").
		Where(squirrel.Eq{"field_id": fieldID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByFieldID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFieldID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	courts := make([]*domain.Court, 0)
	for rows.Next() {
		var court domain.Court
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&court.ID,
			&court.FieldID,
			&court.Name,
			&court.PricePerHour,
			&court.CourtType,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByFieldID - scan row: %v", ErrScanRow, err)
		}

		court.CreatedAt = createdAt.Time
		court.UpdatedAt = updatedAt.Time
		courts = append(courts, &court)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByFieldID - rows error: %v", ErrScanRow, err)
	}

	return courts, nil
}
