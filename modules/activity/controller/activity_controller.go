package controller

import (
	"creator-ledger/core/constants"
	"creator-ledger/core/controller"
	"creator-ledger/core/params"
	"creator-ledger/modules/activity/service"

	"github.com/labstack/echo/v4"
)

type ActivityController struct {
	controller.BaseController
	ActivityService service.ActivityServiceInterface
}

func NewActivityController(svc service.ActivityServiceInterface) *ActivityController {
	return &ActivityController{
		BaseController:  controller.NewBaseController(),
		ActivityService: svc,
	}
}

// GetFeed handles GET /activity/:userAddr?type=&limit=
func (c *ActivityController) GetFeed(ctx echo.Context) error {
	limit := params.IntQuery(ctx, "limit", constants.ActivityDefaultLimit, 1, constants.ActivityMaxLimit)
	result, appErr := c.ActivityService.GetFeed(ctx.Request().Context(), ctx.Param("userAddr"), ctx.QueryParam("type"), limit)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}
