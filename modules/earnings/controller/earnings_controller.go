package controller

import (
	"creator-ledger/core/controller"
	"creator-ledger/modules/earnings/service"

	"github.com/labstack/echo/v4"
)

type EarningsController struct {
	controller.BaseController
	EarningsService service.EarningsServiceInterface
}

func NewEarningsController(svc service.EarningsServiceInterface) *EarningsController {
	return &EarningsController{
		BaseController:  controller.NewBaseController(),
		EarningsService: svc,
	}
}

// GetEarnings handles GET /creators/:creatorAddr/earnings
func (c *EarningsController) GetEarnings(ctx echo.Context) error {
	result, appErr := c.EarningsService.GetEarnings(ctx.Request().Context(), ctx.Param("creatorAddr"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// GetStudio handles GET /creators/:creatorAddr/studio
func (c *EarningsController) GetStudio(ctx echo.Context) error {
	result, appErr := c.EarningsService.GetStudio(ctx.Request().Context(), ctx.Param("creatorAddr"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}
