package controller

import (
	"creator-ledger/core/constants"
	"creator-ledger/core/controller"
	"creator-ledger/core/errors"
	"creator-ledger/core/params"
	"creator-ledger/modules/points/dto"
	"creator-ledger/modules/points/service"

	"github.com/labstack/echo/v4"
)

type PointsController struct {
	controller.BaseController
	PointsService service.PointsServiceInterface
}

func NewPointsController(svc service.PointsServiceInterface) *PointsController {
	return &PointsController{
		BaseController: controller.NewBaseController(),
		PointsService:  svc,
	}
}

// CreditTask handles POST /points/task
func (c *PointsController) CreditTask(ctx echo.Context) error {
	var req dto.CreditTaskRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if req.Correct == nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "correct is required")
	}
	result, appErr := c.PointsService.CreditTask(ctx.Request().Context(), req.UserAddr, req.VideoID, *req.Correct)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Task recorded")
}

// CreditShare handles POST /points/share
func (c *PointsController) CreditShare(ctx echo.Context) error {
	var req dto.CreditVideoRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	result, appErr := c.PointsService.CreditShare(ctx.Request().Context(), req.UserAddr, req.VideoID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Share recorded")
}

// CreditPurchase handles POST /points/purchase
func (c *PointsController) CreditPurchase(ctx echo.Context) error {
	var req dto.CreditVideoRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	result, appErr := c.PointsService.CreditPurchase(ctx.Request().Context(), req.UserAddr, req.VideoID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Purchase recorded")
}

// CreditCampaign handles POST /points/campaign
func (c *PointsController) CreditCampaign(ctx echo.Context) error {
	var req dto.CreditCampaignRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	result, appErr := c.PointsService.CreditCampaign(ctx.Request().Context(), req.UserAddr, req.CampaignID, req.FeeCents)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Campaign recorded")
}

// GetSummary handles GET /points/:userAddr
func (c *PointsController) GetSummary(ctx echo.Context) error {
	result, appErr := c.PointsService.GetSummary(ctx.Request().Context(), ctx.Param("userAddr"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Leaderboard handles GET /leaderboard
func (c *PointsController) Leaderboard(ctx echo.Context) error {
	limit := params.IntQuery(ctx, "limit", constants.LeaderboardLimit, 1, 100)
	result, appErr := c.PointsService.Leaderboard(ctx.Request().Context(), limit)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}
