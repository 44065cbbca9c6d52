package service

import (
	"context"
	"time"

	coreEntity "creator-ledger/core/entity"
	"creator-ledger/core/errors"
	"creator-ledger/core/params"
	"creator-ledger/core/utils"
	"creator-ledger/modules/notification/dto"
	"creator-ledger/modules/notification/entity"
	"creator-ledger/modules/notification/repository"
)

type NotificationService struct {
	repo repository.NotificationRepositoryInterface
	now  func() time.Time
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{repo: repo, now: time.Now}
}

func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) error {
	if !utils.IsWalletAddress(req.UserAddr) {
		return errors.NewAppError(errors.ErrInvalidInput, "notification recipient must be a wallet address", nil)
	}
	now := s.now()
	notif := &entity.Notification{
		UserAddr: utils.NormalizeAddress(req.UserAddr),
		Title:    req.Title,
		Message:  req.Message,
		Type:     req.Type,
		Data:     entity.JSONB(req.Data),
		IsRead:   false,
		BaseEntity: coreEntity.BaseEntity{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	return s.repo.Create(ctx, notif)
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userAddr string, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return s.repo.GetByUser(ctx, utils.NormalizeAddress(userAddr), queryParams)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userAddr string, ids []string) error {
	return s.repo.MarkAsRead(ctx, utils.NormalizeAddress(userAddr), ids)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userAddr string) error {
	return s.repo.MarkAllAsRead(ctx, utils.NormalizeAddress(userAddr))
}

func (s *NotificationService) CountUnread(ctx context.Context, userAddr string) (int, error) {
	return s.repo.CountUnread(ctx, utils.NormalizeAddress(userAddr))
}
