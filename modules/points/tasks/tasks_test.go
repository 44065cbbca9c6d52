package tasks

import (
	"context"
	"encoding/json"
	"testing"

	"creator-ledger/core/errors"
	"creator-ledger/modules/points/dto"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPoints struct {
	purchases []string
	campaigns []int64
	err       *errors.AppError
}

func (s *stubPoints) CreditTask(context.Context, string, string, bool) (*dto.CreditResponse, *errors.AppError) {
	return &dto.CreditResponse{}, nil
}

func (s *stubPoints) CreditShare(context.Context, string, string) (*dto.CreditResponse, *errors.AppError) {
	return &dto.CreditResponse{}, nil
}

func (s *stubPoints) CreditPurchase(_ context.Context, userAddr, videoID string) (*dto.CreditResponse, *errors.AppError) {
	if s.err != nil {
		return nil, s.err
	}
	s.purchases = append(s.purchases, userAddr+"/"+videoID)
	return &dto.CreditResponse{Credited: true}, nil
}

func (s *stubPoints) CreditCampaign(_ context.Context, _, _ string, feeCents int64) (*dto.CampaignCreditResponse, *errors.AppError) {
	if s.err != nil {
		return nil, s.err
	}
	s.campaigns = append(s.campaigns, feeCents)
	return &dto.CampaignCreditResponse{Credited: true}, nil
}

func (s *stubPoints) GetSummary(context.Context, string) (*dto.PointsSummary, *errors.AppError) {
	return nil, nil
}

func (s *stubPoints) Leaderboard(context.Context, int) (*dto.LeaderboardResponse, *errors.AppError) {
	return nil, nil
}

func task(t *testing.T, typ string, payload any) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(typ, b)
}

func TestHandleCreditPurchase(t *testing.T) {
	stub := &stubPoints{}
	h := NewHandler(stub)

	err := h.HandleCreditPurchase(context.Background(), task(t, TypeCreditPurchase, CreditPurchasePayload{UserAddr: "0xa1", VideoID: "v1"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"0xa1/v1"}, stub.purchases)
}

func TestHandleCreditCampaign(t *testing.T) {
	stub := &stubPoints{}
	h := NewHandler(stub)

	err := h.HandleCreditCampaign(context.Background(), task(t, TypeCreditCampaign, CreditCampaignPayload{UserAddr: "0xa1", CampaignID: "c", FeeCents: 250}))
	require.NoError(t, err)
	assert.Equal(t, []int64{250}, stub.campaigns)
}

func TestMalformedPayloadIsNotRetried(t *testing.T) {
	h := NewHandler(&stubPoints{})
	err := h.HandleCreditPurchase(context.Background(), asynq.NewTask(TypeCreditPurchase, []byte("{")))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestValidationFailuresSkipRetryButStorageFailuresRetry(t *testing.T) {
	stub := &stubPoints{err: errors.NewAppError(errors.ErrInvalidInput, "bad address", nil)}
	h := NewHandler(stub)
	err := h.HandleCreditPurchase(context.Background(), task(t, TypeCreditPurchase, CreditPurchasePayload{}))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	stub.err = errors.NewAppError(errors.ErrNotFound, "campaign not found", nil)
	err = h.HandleCreditCampaign(context.Background(), task(t, TypeCreditCampaign, CreditCampaignPayload{}))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	stub.err = errors.NewAppError(errors.ErrUpdateFailed, "db down", nil)
	err = h.HandleCreditCampaign(context.Background(), task(t, TypeCreditCampaign, CreditCampaignPayload{}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
