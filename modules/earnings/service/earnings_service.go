package service

import (
	"context"
	"sync"

	"creator-ledger/core/errors"
	"creator-ledger/core/logger"
	"creator-ledger/core/metrics"
	"creator-ledger/core/policy"
	"creator-ledger/core/utils"
	"creator-ledger/modules/earnings/dto"
	"creator-ledger/modules/earnings/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// VideoCreatorEarnings is the creator's cut of video sales on the earnings page.
func VideoCreatorEarnings(p policy.Policy, salesCents int64) decimal.Decimal {
	return policy.ShareOfCents(salesCents, p.VideoCreatorShare)
}

// MeetCreatorEarnings is the creator's cut of completed sessions.
func MeetCreatorEarnings(p policy.Policy, completedCents int64) decimal.Decimal {
	return policy.ShareOfCents(completedCents, p.MeetCreatorShare)
}

// StudioVideoEarnings is the per-video figure shown in the studio, which uses its own share.
func StudioVideoEarnings(p policy.Policy, revenueCents int64) decimal.Decimal {
	return policy.ShareOfCents(revenueCents, p.StudioVideoShare)
}

type EarningsServiceInterface interface {
	GetEarnings(ctx context.Context, creatorAddr string) (*dto.EarningsResponse, *errors.AppError)
	GetStudio(ctx context.Context, creatorAddr string) (*dto.StudioResponse, *errors.AppError)
}

type EarningsService struct {
	repo   repository.EarningsRepositoryInterface
	policy policy.Policy
}

func NewEarningsService(repo repository.EarningsRepositoryInterface, p policy.Policy) *EarningsService {
	return &EarningsService{repo: repo, policy: p}
}

// GetEarnings reads video and meet sales in parallel. A failed read is logged and counted
// as zero so one broken source does not blank the page.
func (s *EarningsService) GetEarnings(ctx context.Context, creatorAddr string) (*dto.EarningsResponse, *errors.AppError) {
	if !utils.IsWalletAddress(creatorAddr) {
		return nil, errors.NewAppError(errors.ErrInvalidCreatorAddress, "creator address must be 40 hex characters", nil)
	}
	creatorAddr = utils.NormalizeAddress(creatorAddr)

	var (
		videoCents, meetCents int64
		mu                    sync.Mutex
		unavailable           []string
	)
	bestEffort := func(source string, read func(context.Context, string) (int64, error), dst *int64) func() error {
		return func() error {
			v, err := read(ctx, creatorAddr)
			if err != nil {
				metrics.AggregationFallbacks.WithLabelValues(source).Inc()
				logger.Warn("EarningsService:GetEarnings:SourceFailed", "source", source, "creator_addr", creatorAddr, "error", err)
				mu.Lock()
				unavailable = append(unavailable, source)
				mu.Unlock()
				return nil
			}
			*dst = v
			return nil
		}
	}

	var g errgroup.Group
	g.Go(bestEffort("video_sales", s.repo.VideoSalesCents, &videoCents))
	g.Go(bestEffort("meet_sales", s.repo.CompletedMeetCents, &meetCents))
	_ = g.Wait()

	video := VideoCreatorEarnings(s.policy, videoCents)
	meet := MeetCreatorEarnings(s.policy, meetCents)

	return &dto.EarningsResponse{
		CreatorAddr:       creatorAddr,
		VideoSalesCents:   videoCents,
		MeetSalesCents:    meetCents,
		VideoEarningsUSD:  video.StringFixed(2),
		MeetEarningsUSD:   meet.StringFixed(2),
		TotalEarningsUSD:  video.Add(meet).StringFixed(2),
		UnavailableSource: unavailable,
	}, nil
}

func (s *EarningsService) GetStudio(ctx context.Context, creatorAddr string) (*dto.StudioResponse, *errors.AppError) {
	if !utils.IsWalletAddress(creatorAddr) {
		return nil, errors.NewAppError(errors.ErrInvalidCreatorAddress, "creator address must be 40 hex characters", nil)
	}
	creatorAddr = utils.NormalizeAddress(creatorAddr)

	rows, err := s.repo.StudioVideos(ctx, creatorAddr)
	if err != nil {
		metrics.AggregationFallbacks.WithLabelValues("studio_videos").Inc()
		logger.Warn("EarningsService:GetStudio:SourceFailed", "creator_addr", creatorAddr, "error", err)
		rows = nil
	}

	resp := &dto.StudioResponse{CreatorAddr: creatorAddr, Videos: make([]dto.StudioVideo, 0, len(rows))}
	var revenueCents int64
	for _, row := range rows {
		revenueCents += row.RevenueCents
		resp.TotalBuyers += row.Buyers
		resp.Videos = append(resp.Videos, dto.StudioVideo{
			VideoID:     row.VideoID,
			Title:       row.Title,
			PriceUSD:    policy.CentsToUSD(row.PriceCents).StringFixed(2),
			Buyers:      row.Buyers,
			RevenueUSD:  policy.CentsToUSD(row.RevenueCents).StringFixed(2),
			EarningsUSD: StudioVideoEarnings(s.policy, row.RevenueCents).StringFixed(2),
		})
	}
	resp.TotalRevenueUSD = policy.CentsToUSD(revenueCents).StringFixed(2)
	resp.TotalEarningsUSD = StudioVideoEarnings(s.policy, revenueCents).StringFixed(2)
	return resp, nil
}
