package service

import (
	"context"
	"database/sql"
	"strings"

	"creator-ledger/core/constants"
	"creator-ledger/core/errors"
	"creator-ledger/core/logger"
	"creator-ledger/core/policy"
	"creator-ledger/core/queue"
	"creator-ledger/core/utils"
	"creator-ledger/modules/commerce/dto"
	"creator-ledger/modules/commerce/entity"
	"creator-ledger/modules/commerce/repository"
	"creator-ledger/modules/points/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type CommerceServiceInterface interface {
	RegisterVideo(ctx context.Context, req *dto.CreateVideoRequest) (*dto.VideoResponse, *errors.AppError)
	RecordPurchase(ctx context.Context, req *dto.CreatePurchaseRequest) (*dto.PurchaseResponse, *errors.AppError)
	CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest) (*dto.CampaignResponse, *errors.AppError)
	RecordClick(ctx context.Context, campaignID, userAddr string) (*dto.ClickResponse, *errors.AppError)
}

// CommerceService writes purchase and campaign rows. Point credits are handed to the
// worker so a slow ledger never blocks the purchase itself.
type CommerceService struct {
	repo  repository.CommerceRepositoryInterface
	queue queue.Enqueuer
}

func NewCommerceService(repo repository.CommerceRepositoryInterface, q queue.Enqueuer) *CommerceService {
	return &CommerceService{repo: repo, queue: q}
}

func (s *CommerceService) RegisterVideo(ctx context.Context, req *dto.CreateVideoRequest) (*dto.VideoResponse, *errors.AppError) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "video id is required", nil)
	}
	if !utils.IsWalletAddress(req.CreatorAddr) {
		return nil, errors.NewAppError(errors.ErrInvalidCreatorAddress, "creator address must be 40 hex characters", nil)
	}
	if req.PriceCents < 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "price cannot be negative", nil)
	}

	v, err := s.repo.CreateVideo(ctx, &entity.Video{
		ID:          id,
		CreatorAddr: utils.NormalizeAddress(req.CreatorAddr),
		Title:       strings.TrimSpace(req.Title),
		PriceCents:  req.PriceCents,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to register video", err)
	}
	if v == nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "video id belongs to another creator", nil)
	}

	return &dto.VideoResponse{
		ID:          v.ID,
		CreatorAddr: v.CreatorAddr,
		Title:       v.Title,
		PriceUSD:    policy.CentsToUSD(v.PriceCents).StringFixed(2),
	}, nil
}

// RecordPurchase stores the purchase at the video's current price and queues the buyer's
// purchase points.
func (s *CommerceService) RecordPurchase(ctx context.Context, req *dto.CreatePurchaseRequest) (*dto.PurchaseResponse, *errors.AppError) {
	if !utils.IsWalletAddress(req.Buyer) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "buyer address must be 40 hex characters", nil)
	}
	videoID := strings.TrimSpace(req.VideoID)
	if videoID == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "video id is required", nil)
	}
	buyer := utils.NormalizeAddress(req.Buyer)

	video, err := s.repo.GetVideo(ctx, videoID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load video", err)
	}
	if video == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "video not found", nil)
	}

	id, err := s.repo.CreatePurchase(ctx, &entity.Purchase{
		Buyer:      buyer,
		VideoID:    video.ID,
		PriceCents: video.PriceCents,
		TxHash:     sql.NullString{String: req.TxHash, Valid: req.TxHash != ""},
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to record purchase", err)
	}

	queued := s.enqueue(ctx, tasks.TypeCreditPurchase, "purchase:"+id.String(), tasks.CreditPurchasePayload{
		UserAddr: buyer,
		VideoID:  video.ID,
	})

	return &dto.PurchaseResponse{
		PurchaseID:   id.String(),
		VideoID:      video.ID,
		PriceUSD:     policy.CentsToUSD(video.PriceCents).StringFixed(2),
		PointsQueued: queued,
	}, nil
}

func (s *CommerceService) CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest) (*dto.CampaignResponse, *errors.AppError) {
	if !utils.IsWalletAddress(req.CreatorAddr) {
		return nil, errors.NewAppError(errors.ErrInvalidCreatorAddress, "creator address must be 40 hex characters", nil)
	}
	if req.CreationFeeCents <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "creation fee must be positive", nil)
	}
	creator := utils.NormalizeAddress(req.CreatorAddr)

	id, err := s.repo.CreateCampaign(ctx, &entity.Campaign{
		CreatorAddr:      creator,
		Title:            strings.TrimSpace(req.Title),
		CreationFeeCents: req.CreationFeeCents,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create campaign", err)
	}

	queued := s.enqueue(ctx, tasks.TypeCreditCampaign, "campaign:"+id.String(), tasks.CreditCampaignPayload{
		UserAddr:   creator,
		CampaignID: id.String(),
		FeeCents:   req.CreationFeeCents,
	})

	return &dto.CampaignResponse{
		CampaignID:   id.String(),
		FeeUSD:       policy.CentsToUSD(req.CreationFeeCents).StringFixed(2),
		PointsQueued: queued,
	}, nil
}

func (s *CommerceService) RecordClick(ctx context.Context, campaignID, userAddr string) (*dto.ClickResponse, *errors.AppError) {
	id, err := uuid.Parse(campaignID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "campaign not found", nil)
	}
	if userAddr != "" {
		if !utils.IsWalletAddress(userAddr) {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "user address must be 40 hex characters", nil)
		}
		userAddr = utils.NormalizeAddress(userAddr)
	}

	exists, err := s.repo.CampaignExists(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load campaign", err)
	}
	if !exists {
		return nil, errors.NewAppError(errors.ErrNotFound, "campaign not found", nil)
	}

	clicks, err := s.repo.RecordClick(ctx, id, userAddr)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to record click", err)
	}
	return &dto.ClickResponse{CampaignID: id.String(), Clicks: clicks}, nil
}

// enqueue reports whether the credit task was accepted. The row is already durable, so a
// queue failure is logged and surfaced in the response instead of failing the request.
func (s *CommerceService) enqueue(ctx context.Context, taskType, taskID string, payload any) bool {
	if s.queue == nil {
		return false
	}
	err := s.queue.Enqueue(ctx, taskType, payload, asynq.Queue(constants.QueueCritical), asynq.TaskID(taskID))
	if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		logger.Error("CommerceService:Enqueue:Failed", "type", taskType, "task_id", taskID, "error", err)
		return false
	}
	return true
}
