package service

import (
	"context"
	"testing"
	"time"

	"creator-ledger/core/cache"
	"creator-ledger/core/errors"
	"creator-ledger/core/policy"
	"creator-ledger/modules/points/entity"
	"creator-ledger/modules/points/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	user      = "0x00000000000000000000000000000000000000A1"
	campaign1 = "3b0e5d84-6c59-4f3a-9d0c-1f2e3a4b5c61"
	campaign9 = "3b0e5d84-6c59-4f3a-9d0c-1f2e3a4b5c69"
)

// ledgerRepo mirrors the conditional-update semantics of the Postgres repository.
type ledgerRepo struct {
	rows        map[string]*entity.Progress
	ads         map[string]*entity.AdsPoints
	campaigns   map[string]bool
	claimed     map[string]bool
	leaderboard int
}

func newLedgerRepo() *ledgerRepo {
	return &ledgerRepo{
		rows:      map[string]*entity.Progress{},
		ads:       map[string]*entity.AdsPoints{},
		campaigns: map[string]bool{campaign1: true, campaign9: true},
		claimed:   map[string]bool{},
	}
}

func (l *ledgerRepo) Credit(_ context.Context, kind entity.CreditKind, userAddr, videoID string, points int64) (*entity.Progress, bool, error) {
	key := userAddr + "|" + videoID
	row, ok := l.rows[key]
	if !ok {
		row = &entity.Progress{UserAddr: userAddr, VideoID: videoID}
		l.rows[key] = row
	}
	if row.Has(kind) {
		cp := *row
		return &cp, false, nil
	}
	switch kind {
	case entity.CreditTask:
		row.HasCompletedTask, row.PointsFromTask = true, points
	case entity.CreditShare:
		row.HasShared, row.PointsFromShare = true, points
	case entity.CreditPurchase:
		row.HasPurchased, row.PointsFromPurchase = true, points
	}
	row.TotalPointsEarned += points
	cp := *row
	return &cp, true, nil
}

func (l *ledgerRepo) CreditCampaign(_ context.Context, userAddr, campaignID string, points int64) (*entity.AdsPoints, bool, error) {
	if campaignID != "" && !l.campaigns[campaignID] {
		return nil, false, repository.ErrCampaignNotFound
	}
	ads, ok := l.ads[userAddr]
	if !ok {
		ads = &entity.AdsPoints{UserAddr: userAddr}
		l.ads[userAddr] = ads
	}
	if campaignID != "" && l.claimed[campaignID] {
		cp := *ads
		return &cp, false, nil
	}
	l.claimed[campaignID] = true
	ads.TotalAdsPoints += points
	ads.CampaignsCreated++
	cp := *ads
	return &cp, true, nil
}

func (l *ledgerRepo) TotalPointsEarned(_ context.Context, userAddr string) (int64, error) {
	var total int64
	for _, r := range l.rows {
		if r.UserAddr == userAddr {
			total += r.TotalPointsEarned
		}
	}
	return total, nil
}

func (l *ledgerRepo) ListProgress(_ context.Context, userAddr string) ([]entity.Progress, error) {
	out := []entity.Progress{}
	for _, r := range l.rows {
		if r.UserAddr == userAddr {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (l *ledgerRepo) GetAdsPoints(_ context.Context, userAddr string) (*entity.AdsPoints, error) {
	if a, ok := l.ads[userAddr]; ok {
		return a, nil
	}
	return &entity.AdsPoints{UserAddr: userAddr}, nil
}

func (l *ledgerRepo) Leaderboard(context.Context, int) ([]entity.LeaderboardEntry, error) {
	l.leaderboard++
	return []entity.LeaderboardEntry{{UserAddr: "0xa1", TotalPoints: 35}}, nil
}

func TestCreditShareIsIdempotent(t *testing.T) {
	repo := newLedgerRepo()
	svc := NewPointsService(repo, nil, policy.Default())

	first, appErr := svc.CreditShare(context.Background(), user, "v1")
	require.Nil(t, appErr)
	assert.True(t, first.Credited)
	assert.Equal(t, int64(5), first.PointsAwarded)

	second, appErr := svc.CreditShare(context.Background(), user, "v1")
	require.Nil(t, appErr)
	assert.False(t, second.Credited)
	assert.Zero(t, second.PointsAwarded)
	assert.Equal(t, first.Progress.TotalPointsEarned, second.Progress.TotalPointsEarned)
	assert.Equal(t, int64(5), second.Progress.TotalPointsEarned)
}

func TestWrongTaskAnswerSetsFlagWithZeroPoints(t *testing.T) {
	repo := newLedgerRepo()
	svc := NewPointsService(repo, nil, policy.Default())

	resp, appErr := svc.CreditTask(context.Background(), user, "v1", false)
	require.Nil(t, appErr)
	assert.True(t, resp.Credited)
	assert.True(t, resp.Progress.HasCompletedTask)
	assert.Zero(t, resp.Progress.PointsFromTask)

	// A later correct answer cannot re-credit the task.
	again, appErr := svc.CreditTask(context.Background(), user, "v1", true)
	require.Nil(t, appErr)
	assert.False(t, again.Credited)
	assert.Zero(t, again.Progress.TotalPointsEarned)
}

func TestTotalIsSumOfStoredTotals(t *testing.T) {
	repo := newLedgerRepo()
	svc := NewPointsService(repo, nil, policy.Default())
	ctx := context.Background()

	_, _ = svc.CreditTask(ctx, user, "v1", true)
	_, _ = svc.CreditShare(ctx, user, "v1")
	_, _ = svc.CreditPurchase(ctx, user, "v2")
	_, _ = svc.CreditPurchase(ctx, user, "v2")
	_, _ = svc.CreditCampaign(ctx, user, campaign1, 1005)

	summary, appErr := svc.GetSummary(ctx, user)
	require.Nil(t, appErr)
	assert.Equal(t, int64(10+5+20), summary.TotalPointsEarned)
	assert.Equal(t, int64(100), summary.AdsPoints)
	assert.Equal(t, 1, summary.CampaignsCreated)
	assert.Len(t, summary.Videos, 2)
}

func TestCreditCampaignReplayIsNoop(t *testing.T) {
	repo := newLedgerRepo()
	svc := NewPointsService(repo, nil, policy.Default())

	first, appErr := svc.CreditCampaign(context.Background(), user, campaign9, 999)
	require.Nil(t, appErr)
	assert.Equal(t, int64(99), first.PointsAwarded)

	second, appErr := svc.CreditCampaign(context.Background(), user, campaign9, 999)
	require.Nil(t, appErr)
	assert.False(t, second.Credited)
	assert.Equal(t, int64(99), second.AdsPoints.TotalAdsPoints)
}

func TestCreditCampaignRejectsUnknownOrMalformedID(t *testing.T) {
	repo := newLedgerRepo()
	svc := NewPointsService(repo, nil, policy.Default())

	_, appErr := svc.CreditCampaign(context.Background(), user, "c-9", 999)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

	_, appErr = svc.CreditCampaign(context.Background(), user, "9f1d2c3b-0000-4000-8000-000000000000", 999)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
	assert.Empty(t, repo.ads)

	resp, appErr := svc.CreditCampaign(context.Background(), user, " "+campaign1+" ", 999)
	require.Nil(t, appErr)
	assert.True(t, resp.Credited)
}

func TestCreditValidation(t *testing.T) {
	svc := NewPointsService(newLedgerRepo(), nil, policy.Default())

	_, appErr := svc.CreditShare(context.Background(), "not-an-address", "v1")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

	_, appErr = svc.CreditPurchase(context.Background(), user, "  ")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

	_, appErr = svc.CreditCampaign(context.Background(), user, "", -1)
	require.NotNil(t, appErr)
}

func TestLeaderboardIsCached(t *testing.T) {
	repo := newLedgerRepo()
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := NewPointsService(repo, cache.NewMemoryStore(clock), policy.Default())
	svc.now = clock

	for i := 0; i < 3; i++ {
		resp, appErr := svc.Leaderboard(context.Background(), 10)
		require.Nil(t, appErr)
		require.Len(t, resp.Entries, 1)
	}
	assert.Equal(t, 1, repo.leaderboard)

	now = now.Add(leaderboardTTL + time.Second)
	_, appErr := svc.Leaderboard(context.Background(), 10)
	require.Nil(t, appErr)
	assert.Equal(t, 2, repo.leaderboard)
}
