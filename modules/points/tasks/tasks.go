// Package tasks holds the background point credits fed by the commerce intake.
package tasks

import (
	"context"
	"fmt"

	"creator-ledger/core/errors"
	"creator-ledger/core/logger"
	"creator-ledger/core/queue"
	"creator-ledger/modules/points/service"

	"github.com/hibiken/asynq"
)

const (
	TypeCreditPurchase = "points:credit_purchase"
	TypeCreditCampaign = "points:credit_campaign"
)

type CreditPurchasePayload struct {
	UserAddr string `json:"userAddr"`
	VideoID  string `json:"videoId"`
}

type CreditCampaignPayload struct {
	UserAddr   string `json:"userAddr"`
	CampaignID string `json:"campaignId"`
	FeeCents   int64  `json:"feeCents"`
}

type Handler struct {
	points service.PointsServiceInterface
}

func NewHandler(points service.PointsServiceInterface) *Handler {
	return &Handler{points: points}
}

// Register mounts the handlers on the worker mux.
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeCreditPurchase, h.HandleCreditPurchase)
	mux.HandleFunc(TypeCreditCampaign, h.HandleCreditCampaign)
}

func (h *Handler) HandleCreditPurchase(ctx context.Context, t *asynq.Task) error {
	var p CreditPurchasePayload
	if err := queue.Decode(t, &p); err != nil {
		return err
	}
	resp, appErr := h.points.CreditPurchase(ctx, p.UserAddr, p.VideoID)
	if appErr != nil {
		return retryable(appErr)
	}
	logger.Info("PointsTasks:CreditPurchase:Done", "user_addr", p.UserAddr, "video_id", p.VideoID, "credited", resp.Credited)
	return nil
}

func (h *Handler) HandleCreditCampaign(ctx context.Context, t *asynq.Task) error {
	var p CreditCampaignPayload
	if err := queue.Decode(t, &p); err != nil {
		return err
	}
	resp, appErr := h.points.CreditCampaign(ctx, p.UserAddr, p.CampaignID, p.FeeCents)
	if appErr != nil {
		return retryable(appErr)
	}
	logger.Info("PointsTasks:CreditCampaign:Done", "user_addr", p.UserAddr, "campaign_id", p.CampaignID, "credited", resp.Credited)
	return nil
}

// retryable drops validation failures and missing rows from the retry schedule; everything
// else retries.
func retryable(appErr *errors.AppError) error {
	if appErr.Code.IsValidation() || appErr.Code == errors.ErrNotFound {
		return fmt.Errorf("%w: %w", appErr, asynq.SkipRetry)
	}
	return appErr
}
