package service

import (
	"context"
	"fmt"
	"testing"

	"creator-ledger/core/errors"
	"creator-ledger/core/policy"
	"creator-ledger/modules/earnings/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const creator = "0x00000000000000000000000000000000000000C1"

type stubRepo struct {
	video, meet       int64
	videoErr, meetErr error
	studio            []entity.VideoSales
	studioErr         error
}

func (s *stubRepo) VideoSalesCents(context.Context, string) (int64, error) {
	return s.video, s.videoErr
}

func (s *stubRepo) CompletedMeetCents(context.Context, string) (int64, error) {
	return s.meet, s.meetErr
}

func (s *stubRepo) StudioVideos(context.Context, string) ([]entity.VideoSales, error) {
	return s.studio, s.studioErr
}

func TestVideoEarningsFromPurchases(t *testing.T) {
	svc := NewEarningsService(&stubRepo{video: 1000 + 2000}, policy.Default())

	resp, appErr := svc.GetEarnings(context.Background(), creator)
	require.Nil(t, appErr)
	assert.Equal(t, "21.00", resp.VideoEarningsUSD)
	assert.Equal(t, "0.00", resp.MeetEarningsUSD)
	assert.Equal(t, "21.00", resp.TotalEarningsUSD)
	assert.Equal(t, "0x00000000000000000000000000000000000000c1", resp.CreatorAddr)
}

func TestMeetEarningsUseCompletedSessions(t *testing.T) {
	svc := NewEarningsService(&stubRepo{video: 1000, meet: 2500}, policy.Default())

	resp, appErr := svc.GetEarnings(context.Background(), creator)
	require.Nil(t, appErr)
	assert.Equal(t, "7.00", resp.VideoEarningsUSD)
	assert.Equal(t, "20.00", resp.MeetEarningsUSD)
	assert.Equal(t, "27.00", resp.TotalEarningsUSD)
}

func TestEarningsPageAndStudioUseDifferentShares(t *testing.T) {
	p := policy.Default()
	// One $10 video bought twice.
	revenue := int64(2 * 1000)

	assert.Equal(t, "14.00", VideoCreatorEarnings(p, revenue).StringFixed(2))
	assert.Equal(t, "12.00", StudioVideoEarnings(p, revenue).StringFixed(2))

	svc := NewEarningsService(&stubRepo{
		video:  revenue,
		studio: []entity.VideoSales{{VideoID: "v1", Title: "Intro", PriceCents: 1000, Buyers: 2, RevenueCents: revenue}},
	}, p)

	earnings, appErr := svc.GetEarnings(context.Background(), creator)
	require.Nil(t, appErr)
	assert.Equal(t, "14.00", earnings.VideoEarningsUSD)

	studio, appErr := svc.GetStudio(context.Background(), creator)
	require.Nil(t, appErr)
	require.Len(t, studio.Videos, 1)
	assert.Equal(t, "12.00", studio.Videos[0].EarningsUSD)
	assert.Equal(t, "20.00", studio.Videos[0].RevenueUSD)
	assert.Equal(t, "10.00", studio.Videos[0].PriceUSD)
	assert.Equal(t, int64(2), studio.TotalBuyers)
	assert.Equal(t, "12.00", studio.TotalEarningsUSD)
}

func TestFailedSourceDefaultsToZero(t *testing.T) {
	svc := NewEarningsService(&stubRepo{video: 3000, meetErr: fmt.Errorf("timeout")}, policy.Default())

	resp, appErr := svc.GetEarnings(context.Background(), creator)
	require.Nil(t, appErr)
	assert.Equal(t, "21.00", resp.VideoEarningsUSD)
	assert.Equal(t, "0.00", resp.MeetEarningsUSD)
	assert.Equal(t, []string{"meet_sales"}, resp.UnavailableSource)

	studio, appErr := NewEarningsService(&stubRepo{studioErr: fmt.Errorf("down")}, policy.Default()).GetStudio(context.Background(), creator)
	require.Nil(t, appErr)
	assert.Empty(t, studio.Videos)
	assert.Equal(t, "0.00", studio.TotalEarningsUSD)
}

func TestEarningsRejectsBadAddress(t *testing.T) {
	svc := NewEarningsService(&stubRepo{}, policy.Default())
	_, appErr := svc.GetEarnings(context.Background(), "creator-1")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidCreatorAddress, appErr.Code)
}
