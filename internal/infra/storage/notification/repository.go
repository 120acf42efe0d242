package notification

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

var notificationColumns = []string{
	"id",
	"ref_id",
	"target_user_id",
	"audience",
	"category",
	"title",
	"body",
	"is_read",
	"created_at",
}

// Filter параметры выборки уведомлений
type Filter struct {
	Audience     *domain.NotificationAudience
	TargetUserID *int64
	RefID        *int64
	OnlyUnread   bool
}

// Repository репозиторий уведомлений
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет уведомление
func (r *Repository) Create(ctx context.Context, n *domain.Notification) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notifications").
		Columns(notificationColumns...).
		Values(
			n.ID,
			n.RefID,
			n.TargetUserID,
			string(n.Audience),
			string(n.Category),
			n.Title,
			n.Body,
			n.IsRead,
			n.CreatedAt,
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

// List получает уведомления по фильтру, новые первыми
func (r *Repository) List(ctx context.Context, filter Filter) ([]domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(notificationColumns...).
		From("notifications").
		OrderBy("created_at DESC")

	if filter.Audience != nil {
		builder = builder.Where(squirrel.Eq{"audience": string(*filter.Audience)})
	}

	if filter.TargetUserID != nil {
		builder = builder.Where(squirrel.Eq{"target_user_id": *filter.TargetUserID})
	}

	if filter.RefID != nil {
		builder = builder.Where(squirrel.Eq{"ref_id": *filter.RefID})
	}

	if filter.OnlyUnread {
		builder = builder.Where(squirrel.Eq{"is_read": false})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	notifications := make([]domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		var audience, category string

		err = rows.Scan(
			&n.ID,
			&n.RefID,
			&n.TargetUserID,
			&audience,
			&category,
			&n.Title,
			&n.Body,
			&n.IsRead,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan notification: %v", ErrScanRow, err)
		}

		n.Audience = domain.NotificationAudience(audience)
		n.Category = domain.NotificationCategory(category)
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrExecQuery, err)
	}

	return notifications, nil
}

// MarkRead помечает уведомление прочитанным
func (r *Repository) MarkRead(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkRead - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkRead - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkRead - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}
