package service

import (
	"context"
	"fmt"
	"time"

	"creator-ledger/core/cache"
	"creator-ledger/core/constants"
	"creator-ledger/core/errors"
	"creator-ledger/core/logger"
	"creator-ledger/core/metrics"
	"creator-ledger/core/policy"
	"creator-ledger/core/utils"
	"creator-ledger/modules/activity/dto"
	"creator-ledger/modules/activity/entity"
	"creator-ledger/modules/activity/repository"
	bookingEntity "creator-ledger/modules/booking/entity"
	pointsEntity "creator-ledger/modules/points/entity"

	"golang.org/x/sync/errgroup"
)

type ProgressSource interface {
	ListProgress(ctx context.Context, userAddr string) ([]pointsEntity.Progress, error)
}

type BookingSource interface {
	ListByCreator(ctx context.Context, creatorAddr string, status bookingEntity.BookingStatus) ([]bookingEntity.Booking, error)
	ListByParticipant(ctx context.Context, participantAddr string) ([]bookingEntity.Booking, error)
}

type ActivityServiceInterface interface {
	GetFeed(ctx context.Context, userAddr, category string, limit int) (*dto.FeedResponse, *errors.AppError)
}

type ActivityService struct {
	repo     repository.ActivityRepositoryInterface
	progress ProgressSource
	bookings BookingSource
	cache    cache.Store
	policy   policy.Policy
	ttl      time.Duration
	now      func() time.Time
}

func NewActivityService(
	repo repository.ActivityRepositoryInterface,
	progress ProgressSource,
	bookings BookingSource,
	store cache.Store,
	p policy.Policy,
	ttl time.Duration,
) *ActivityService {
	return &ActivityService{
		repo:     repo,
		progress: progress,
		bookings: bookings,
		cache:    store,
		policy:   p,
		ttl:      ttl,
		now:      time.Now,
	}
}

type source struct {
	name  string
	fetch func(ctx context.Context, userAddr string) ([]entity.Event, error)
}

func (s *ActivityService) sources() []source {
	return []source{
		{"uploads", s.uploads},
		{"progress", s.progressEvents},
		{"sales", s.sales},
		{"posts", s.posts},
		{"comments", s.comments},
		{"follows", s.follows},
		{"campaigns", s.campaigns},
		{"meets_hosted", s.meetsHosted},
		{"meets_booked", s.meetsBooked},
	}
}

// GetFeed builds the user's activity feed. Stats cover the whole feed; the category filter
// and limit only shape the returned list.
func (s *ActivityService) GetFeed(ctx context.Context, userAddr, category string, limit int) (*dto.FeedResponse, *errors.AppError) {
	if !utils.IsWalletAddress(userAddr) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "user address must be 40 hex characters", nil)
	}
	cat, err := entity.ParseCategory(category)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	if limit <= 0 {
		limit = constants.ActivityDefaultLimit
	}
	if limit > constants.ActivityMaxLimit {
		limit = constants.ActivityMaxLimit
	}
	userAddr = utils.NormalizeAddress(userAddr)

	key := fmt.Sprintf("%s%s:%s:%d", constants.RedisKeyActivityFeed, userAddr, cat, limit)
	if s.cache != nil && s.ttl > 0 {
		cached, ok, err := cache.GetFresh[dto.FeedResponse](ctx, s.cache, key, s.ttl, s.now())
		if err != nil {
			logger.Warn("ActivityService:GetFeed:CacheGet", "error", err)
		} else if ok {
			return &cached, nil
		}
	}

	events := Merge(s.fetchAll(ctx, userAddr)...)
	shown := Filter(events, cat, limit)

	resp := &dto.FeedResponse{
		UserAddr:   userAddr,
		Type:       string(cat),
		Activities: make([]dto.Activity, 0, len(shown)),
		Stats:      ComputeStats(events),
	}
	for _, e := range shown {
		resp.Activities = append(resp.Activities, ToActivity(e))
	}

	if s.cache != nil && s.ttl > 0 {
		if err := cache.PutJSON(ctx, s.cache, key, resp); err != nil {
			logger.Warn("ActivityService:GetFeed:CachePut", "error", err)
		}
	}
	return resp, nil
}

// fetchAll runs every source in parallel. A failing source contributes nothing.
func (s *ActivityService) fetchAll(ctx context.Context, userAddr string) [][]entity.Event {
	srcs := s.sources()
	results := make([][]entity.Event, len(srcs))

	var g errgroup.Group
	for i, src := range srcs {
		g.Go(func() error {
			events, err := src.fetch(ctx, userAddr)
			if err != nil {
				metrics.AggregationFallbacks.WithLabelValues("activity_" + src.name).Inc()
				logger.Warn("ActivityService:FetchSource:Failed", "source", src.name, "user_addr", userAddr, "error", err)
				return nil
			}
			results[i] = events
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (s *ActivityService) uploads(ctx context.Context, userAddr string) ([]entity.Event, error) {
	rows, err := s.repo.Uploads(ctx, userAddr)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Event, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.VideoUpload{
			Base:     entity.Base{ID: "upload-" + r.VideoID, Date: r.CreatedAt},
			VideoID:  r.VideoID,
			Title:    r.Title,
			PriceUSD: policy.CentsToUSD(r.PriceCents),
		})
	}
	return out, nil
}

func (s *ActivityService) progressEvents(ctx context.Context, userAddr string) ([]entity.Event, error) {
	rows, err := s.progress.ListProgress(ctx, userAddr)
	if err != nil {
		return nil, err
	}
	var out []entity.Event
	for _, p := range rows {
		id := p.ID.String()
		if p.HasCompletedTask && p.TaskCompletedAt != nil {
			out = append(out, entity.TaskCompleted{
				Base:    entity.Base{ID: "task-" + id, Date: *p.TaskCompletedAt, Points: p.PointsFromTask},
				VideoID: p.VideoID,
			})
		}
		if p.HasShared && p.SharedAt != nil {
			out = append(out, entity.VideoShared{
				Base:    entity.Base{ID: "share-" + id, Date: *p.SharedAt, Points: p.PointsFromShare},
				VideoID: p.VideoID,
			})
		}
		if p.HasPurchased && p.PurchasedAt != nil {
			out = append(out, entity.VideoPurchased{
				Base:    entity.Base{ID: "purchase-" + id, Date: *p.PurchasedAt, Points: p.PointsFromPurchase},
				VideoID: p.VideoID,
			})
		}
	}
	return out, nil
}

func (s *ActivityService) sales(ctx context.Context, userAddr string) ([]entity.Event, error) {
	rows, err := s.repo.Sales(ctx, userAddr)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Event, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.VideoSold{
			Base: entity.Base{
				ID:       "sale-" + r.PurchaseID,
				Date:     r.CreatedAt,
				Earnings: policy.ShareOfCents(r.PriceCents, s.policy.VideoCreatorShare),
			},
			VideoID: r.VideoID,
			Title:   r.Title,
			Buyer:   r.Buyer,
		})
	}
	return out, nil
}

func (s *ActivityService) posts(ctx context.Context, userAddr string) ([]entity.Event, error) {
	rows, err := s.repo.Posts(ctx, userAddr)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Event, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.PostCreated{
			Base:   entity.Base{ID: "post-" + r.ID, Date: r.CreatedAt},
			PostID: r.ID,
			Title:  r.Title,
		})
	}
	return out, nil
}

func (s *ActivityService) comments(ctx context.Context, userAddr string) ([]entity.Event, error) {
	rows, err := s.repo.Comments(ctx, userAddr)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Event, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.CommentCreated{
			Base:   entity.Base{ID: "comment-" + r.ID, Date: r.CreatedAt},
			PostID: r.PostID,
			Body:   r.Body,
		})
	}
	return out, nil
}

func (s *ActivityService) follows(ctx context.Context, userAddr string) ([]entity.Event, error) {
	rows, err := s.repo.Follows(ctx, userAddr)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Event, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.UserFollowed{
			Base:         entity.Base{ID: "follow-" + r.FolloweeAddr, Date: r.CreatedAt},
			FolloweeAddr: r.FolloweeAddr,
		})
	}
	return out, nil
}

func (s *ActivityService) campaigns(ctx context.Context, userAddr string) ([]entity.Event, error) {
	rows, err := s.repo.Campaigns(ctx, userAddr)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Event, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.CampaignCreated{
			Base:       entity.Base{ID: "campaign-" + r.ID, Date: r.CreatedAt, Points: s.policy.AdsPoints(r.CreationFeeCents)},
			CampaignID: r.ID,
			Title:      r.Title,
			FeeUSD:     policy.CentsToUSD(r.CreationFeeCents),
		})
	}
	return out, nil
}

func (s *ActivityService) meetsHosted(ctx context.Context, userAddr string) ([]entity.Event, error) {
	rows, err := s.bookings.ListByCreator(ctx, userAddr, bookingEntity.StatusCompleted)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Event, 0, len(rows))
	for _, b := range rows {
		out = append(out, entity.MeetHosted{
			Base: entity.Base{
				ID:       "hosted-" + b.ID,
				Date:     b.StartsAt,
				Earnings: policy.ShareOfCents(b.TotalCents, s.policy.MeetCreatorShare),
			},
			BookingID:       b.ID,
			ParticipantAddr: b.ParticipantAddr,
			Kind:            b.Kind,
		})
	}
	return out, nil
}

func (s *ActivityService) meetsBooked(ctx context.Context, userAddr string) ([]entity.Event, error) {
	rows, err := s.bookings.ListByParticipant(ctx, userAddr)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Event, 0, len(rows))
	for _, b := range rows {
		out = append(out, entity.MeetBooked{
			Base:        entity.Base{ID: "booked-" + b.ID, Date: b.CreatedAt},
			BookingID:   b.ID,
			CreatorAddr: b.CreatorAddr,
			Kind:        b.Kind,
		})
	}
	return out, nil
}
