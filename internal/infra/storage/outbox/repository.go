package outbox

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий outbox-таблицы уведомлений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория outbox
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Enqueue добавляет уведомление в outbox
// Вызывается внутри транзакции вместе с обновлением бронирования,
// поэтому берет executor из контекста
func (r *Repository) Enqueue(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notification_outbox").
		Columns(
			"booking_id",
			"customer_id",
			"vehicle_make",
			"vehicle_model",
			"status",
		).
		Values(
			n.BookingID,
			n.CustomerID,
			n.VehicleMake,
			n.VehicleModel,
			domain.NotificationPending,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Enqueue - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&n.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Enqueue - execute insert: %v", ErrExecQuery, err)
	}

	n.Status = domain.NotificationPending
	n.CreatedAt = createdAt.Time

	return n, nil
}

// FetchPending получает порцию необработанных уведомлений
// в порядке постановки в очередь
func (r *Repository) FetchPending(ctx context.Context, limit int) ([]*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"customer_id",
		"vehicle_make",
		"vehicle_model",
		"status",
		"attempts",
		"last_error",
		"created_at",
		"sent_at",
	).
		From("notification_outbox").
		Where(squirrel.Eq{"status": domain.NotificationPending}).
		OrderBy("id ASC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FetchPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchPending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		var createdAt, sentAt sql.NullTime

		err := rows.Scan(
			&n.ID,
			&n.BookingID,
			&n.CustomerID,
			&n.VehicleMake,
			&n.VehicleModel,
			&n.Status,
			&n.Attempts,
			&n.LastError,
			&createdAt,
			&sentAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: FetchPending - scan row: %v", ErrScanRow, err)
		}

		n.CreatedAt = createdAt.Time
		if sentAt.Valid {
			t := sentAt.Time
			n.SentAt = &t
		}

		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FetchPending - rows error: %v", ErrScanRow, err)
	}

	return notifications, nil
}

// MarkSent помечает уведомление отправленным
func (r *Repository) MarkSent(ctx context.Context, id int64) error {
	return r.markTerminal(ctx, id, domain.NotificationSent, nil, true)
}

// MarkSkipped помечает уведомление пропущенным
// (владелец не найден или у него нет email)
func (r *Repository) MarkSkipped(ctx context.Context, id int64, reason string) error {
	return r.markTerminal(ctx, id, domain.NotificationSkipped, &reason, false)
}

// MarkAttemptFailed фиксирует неудачную попытку отправки.
// Увеличивает счетчик попыток; если попытки исчерпаны, переводит
// уведомление в статус failed, иначе оставляет pending для повтора
func (r *Repository) MarkAttemptFailed(ctx context.Context, id int64, sendErr string, maxAttempts int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notification_outbox").
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("last_error", sendErr).
		Set("status", squirrel.Expr(
			"CASE WHEN attempts + 1 >= ? THEN ? ELSE ? END",
			maxAttempts, domain.NotificationFailed, domain.NotificationPending,
		)).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkAttemptFailed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkAttemptFailed - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkAttemptFailed - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (r *Repository) markTerminal(ctx context.Context, id int64, status domain.NotificationStatus, lastError *string, setSentAt bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("notification_outbox").
		Set("status", status).
		Where(squirrel.Eq{"id": id})

	if lastError != nil {
		updateBuilder = updateBuilder.Set("last_error", *lastError)
	}
	if setSentAt {
		updateBuilder = updateBuilder.Set("sent_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: markTerminal - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: markTerminal - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: markTerminal - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}
