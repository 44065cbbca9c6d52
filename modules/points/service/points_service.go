package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"creator-ledger/core/cache"
	"creator-ledger/core/errors"
	"creator-ledger/core/logger"
	"creator-ledger/core/metrics"
	"creator-ledger/core/policy"
	"creator-ledger/core/utils"
	"creator-ledger/modules/points/dto"
	"creator-ledger/modules/points/entity"
	"creator-ledger/modules/points/repository"

	"github.com/google/uuid"
)

const leaderboardTTL = 30 * time.Second

type PointsServiceInterface interface {
	CreditTask(ctx context.Context, userAddr, videoID string, correct bool) (*dto.CreditResponse, *errors.AppError)
	CreditShare(ctx context.Context, userAddr, videoID string) (*dto.CreditResponse, *errors.AppError)
	CreditPurchase(ctx context.Context, userAddr, videoID string) (*dto.CreditResponse, *errors.AppError)
	CreditCampaign(ctx context.Context, userAddr, campaignID string, feeCents int64) (*dto.CampaignCreditResponse, *errors.AppError)
	GetSummary(ctx context.Context, userAddr string) (*dto.PointsSummary, *errors.AppError)
	Leaderboard(ctx context.Context, limit int) (*dto.LeaderboardResponse, *errors.AppError)
}

type PointsService struct {
	repo   repository.PointsRepositoryInterface
	cache  cache.Store
	policy policy.Policy
	now    func() time.Time
}

func NewPointsService(repo repository.PointsRepositoryInterface, store cache.Store, p policy.Policy) *PointsService {
	return &PointsService{repo: repo, cache: store, policy: p, now: time.Now}
}

func (s *PointsService) CreditTask(ctx context.Context, userAddr, videoID string, correct bool) (*dto.CreditResponse, *errors.AppError) {
	points := int64(0)
	if correct {
		points = s.policy.TaskPoints
	}
	return s.credit(ctx, entity.CreditTask, userAddr, videoID, points)
}

func (s *PointsService) CreditShare(ctx context.Context, userAddr, videoID string) (*dto.CreditResponse, *errors.AppError) {
	return s.credit(ctx, entity.CreditShare, userAddr, videoID, s.policy.SharePoints)
}

func (s *PointsService) CreditPurchase(ctx context.Context, userAddr, videoID string) (*dto.CreditResponse, *errors.AppError) {
	return s.credit(ctx, entity.CreditPurchase, userAddr, videoID, s.policy.PurchasePoints)
}

func (s *PointsService) credit(ctx context.Context, kind entity.CreditKind, userAddr, videoID string, points int64) (*dto.CreditResponse, *errors.AppError) {
	if !utils.IsWalletAddress(userAddr) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "user address must be 40 hex characters", nil)
	}
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "video id is required", nil)
	}
	userAddr = utils.NormalizeAddress(userAddr)

	progress, credited, err := s.repo.Credit(ctx, kind, userAddr, videoID, points)
	if err != nil {
		metrics.PointCredits.WithLabelValues(string(kind), "error").Inc()
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to credit points", err)
	}

	resp := &dto.CreditResponse{Credited: credited, Progress: progress}
	if credited {
		resp.PointsAwarded = points
		metrics.PointCredits.WithLabelValues(string(kind), "credited").Inc()
		logger.Info("PointsService:Credit:Success", "kind", kind, "user_addr", userAddr, "video_id", videoID, "points", points)
	} else {
		metrics.PointCredits.WithLabelValues(string(kind), "duplicate").Inc()
		logger.Debug("PointsService:Credit:AlreadyCredited", "kind", kind, "user_addr", userAddr, "video_id", videoID)
	}
	return resp, nil
}

// CreditCampaign awards floor(fee / divisor) ads points for a created campaign.
func (s *PointsService) CreditCampaign(ctx context.Context, userAddr, campaignID string, feeCents int64) (*dto.CampaignCreditResponse, *errors.AppError) {
	if !utils.IsWalletAddress(userAddr) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "user address must be 40 hex characters", nil)
	}
	if feeCents < 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "fee must not be negative", nil)
	}
	campaignID = strings.TrimSpace(campaignID)
	if campaignID != "" {
		id, err := uuid.Parse(campaignID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "campaign id must be a UUID", err)
		}
		campaignID = id.String()
	}
	userAddr = utils.NormalizeAddress(userAddr)
	points := s.policy.AdsPoints(feeCents)

	ads, credited, err := s.repo.CreditCampaign(ctx, userAddr, campaignID, points)
	if errors.Is(err, repository.ErrCampaignNotFound) {
		return nil, errors.NewAppError(errors.ErrNotFound, "campaign not found", err)
	}
	if err != nil {
		metrics.PointCredits.WithLabelValues("campaign", "error").Inc()
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to credit campaign points", err)
	}

	resp := &dto.CampaignCreditResponse{Credited: credited, AdsPoints: ads}
	if credited {
		resp.PointsAwarded = points
		metrics.PointCredits.WithLabelValues("campaign", "credited").Inc()
	} else {
		metrics.PointCredits.WithLabelValues("campaign", "duplicate").Inc()
	}
	return resp, nil
}

func (s *PointsService) GetSummary(ctx context.Context, userAddr string) (*dto.PointsSummary, *errors.AppError) {
	if !utils.IsWalletAddress(userAddr) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "user address must be 40 hex characters", nil)
	}
	userAddr = utils.NormalizeAddress(userAddr)

	total, err := s.repo.TotalPointsEarned(ctx, userAddr)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load points", err)
	}
	videos, err := s.repo.ListProgress(ctx, userAddr)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load points", err)
	}
	ads, err := s.repo.GetAdsPoints(ctx, userAddr)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load ads points", err)
	}

	return &dto.PointsSummary{
		UserAddr:          userAddr,
		TotalPointsEarned: total,
		AdsPoints:         ads.TotalAdsPoints,
		CampaignsCreated:  ads.CampaignsCreated,
		Videos:            videos,
	}, nil
}

// Leaderboard is served from cache for a short window; a cache failure only costs a query.
func (s *PointsService) Leaderboard(ctx context.Context, limit int) (*dto.LeaderboardResponse, *errors.AppError) {
	key := "leaderboard:" + strconv.Itoa(limit)
	if s.cache != nil {
		cached, ok, err := cache.GetFresh[dto.LeaderboardResponse](ctx, s.cache, key, leaderboardTTL, s.now())
		if err != nil {
			logger.Warn("PointsService:Leaderboard:CacheGet", "error", err)
		} else if ok {
			return &cached, nil
		}
	}

	entries, err := s.repo.Leaderboard(ctx, limit)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load leaderboard", err)
	}
	resp := &dto.LeaderboardResponse{Entries: entries}

	if s.cache != nil {
		if err := cache.PutJSON(ctx, s.cache, key, resp); err != nil {
			logger.Warn("PointsService:Leaderboard:CachePut", "error", err)
		}
	}
	return resp, nil
}
