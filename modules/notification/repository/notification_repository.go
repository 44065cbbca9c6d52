package repository

import (
	"context"

	"creator-ledger/core/database"
	"creator-ledger/core/logger"
	"creator-ledger/core/params"
	"creator-ledger/modules/notification/entity"

	"github.com/jmoiron/sqlx"
)

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByUser(ctx context.Context, userAddr string, params params.QueryParams) (*entity.PaginatedNotificationEntity, error)
	MarkAsRead(ctx context.Context, userAddr string, ids []string) error
	MarkAllAsRead(ctx context.Context, userAddr string) error
	CountUnread(ctx context.Context, userAddr string) (int, error)
}

type NotificationRepository struct {
	db database.IDatabase
}

func NewNotificationRepository(db database.IDatabase) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (title, message, type, data, user_addr, is_read, created_at, updated_at)
		VALUES (:title, :message, :type, :data, :user_addr, :is_read, :created_at, :updated_at)
		RETURNING id
	`
	rows, err := r.db.NamedQueryContext(ctx, query, notification)
	if err != nil {
		logger.Error("NotificationRepository:Create:Error:", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&notification.ID)
	}
	return rows.Err()
}

func (r *NotificationRepository) GetByUser(ctx context.Context, userAddr string, params params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	offset := (params.PageNumber - 1) * params.PageSize
	baseQuery := `FROM notifications WHERE user_addr = $1`

	var totalItems int
	if err := r.db.GetContext(ctx, &totalItems, "SELECT COUNT(*) "+baseQuery, userAddr); err != nil {
		logger.Error("NotificationRepository:GetByUser:Count:Error:", err)
		return nil, err
	}

	query := `
		SELECT id, user_addr, title, message, type, data, is_read, created_at, updated_at ` + baseQuery + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	notifications := []entity.Notification{}
	if err := r.db.SelectContext(ctx, &notifications, query, userAddr, params.PageSize, offset); err != nil {
		logger.Error("NotificationRepository:GetByUser:Select:Error:", err)
		return nil, err
	}

	return &entity.PaginatedNotificationEntity{
		Items:      notifications,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, userAddr string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`UPDATE notifications SET is_read = true, updated_at = now() WHERE user_addr = ? AND id IN (?)`, userAddr, ids)
	if err != nil {
		return err
	}

	query = r.db.SQLx().Rebind(query)
	if err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.Error("NotificationRepository:MarkAsRead:Error:", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userAddr string) error {
	query := `UPDATE notifications SET is_read = true, updated_at = now() WHERE user_addr = $1 AND is_read = false`
	if err := r.db.ExecContext(ctx, query, userAddr); err != nil {
		logger.Error("NotificationRepository:MarkAllAsRead:Error:", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userAddr string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_addr = $1 AND is_read = false`
	if err := r.db.GetContext(ctx, &count, query, userAddr); err != nil {
		logger.Error("NotificationRepository:CountUnread:Error:", err)
		return 0, err
	}
	return count, nil
}
