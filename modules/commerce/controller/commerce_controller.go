package controller

import (
	"creator-ledger/core/controller"
	"creator-ledger/core/errors"
	"creator-ledger/modules/commerce/dto"
	"creator-ledger/modules/commerce/service"

	"github.com/labstack/echo/v4"
)

type CommerceController struct {
	controller.BaseController
	CommerceService service.CommerceServiceInterface
}

func NewCommerceController(svc service.CommerceServiceInterface) *CommerceController {
	return &CommerceController{
		BaseController:  controller.NewBaseController(),
		CommerceService: svc,
	}
}

// RegisterVideo handles POST /videos
func (c *CommerceController) RegisterVideo(ctx echo.Context) error {
	var req dto.CreateVideoRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	result, appErr := c.CommerceService.RegisterVideo(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Video registered")
}

// RecordPurchase handles POST /purchases
func (c *CommerceController) RecordPurchase(ctx echo.Context) error {
	var req dto.CreatePurchaseRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	result, appErr := c.CommerceService.RecordPurchase(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Purchase recorded")
}

// CreateCampaign handles POST /campaigns
func (c *CommerceController) CreateCampaign(ctx echo.Context) error {
	var req dto.CreateCampaignRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	result, appErr := c.CommerceService.CreateCampaign(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Campaign created")
}

// RecordClick handles POST /campaigns/:id/clicks. The body is optional.
func (c *CommerceController) RecordClick(ctx echo.Context) error {
	var req dto.RecordClickRequest
	_ = ctx.Bind(&req)

	result, appErr := c.CommerceService.RecordClick(ctx.Request().Context(), ctx.Param("id"), req.UserAddr)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Click recorded")
}
