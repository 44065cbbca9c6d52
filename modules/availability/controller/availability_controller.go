package controller

import (
	"creator-ledger/core/controller"
	"creator-ledger/core/errors"
	"creator-ledger/modules/availability/dto"
	"creator-ledger/modules/availability/service"

	"github.com/labstack/echo/v4"
)

type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityServiceInterface
}

func NewAvailabilityController(svc service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

// SubmitSchedule handles PUT /creators/:creatorId/availability
func (c *AvailabilityController) SubmitSchedule(ctx echo.Context) error {
	var req dto.SubmitScheduleRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.AvailabilityService.SubmitSchedule(ctx.Request().Context(), ctx.Param("creatorId"), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Schedule saved")
}

// GetSessions handles GET /creators/:creatorId/sessions
func (c *AvailabilityController) GetSessions(ctx echo.Context) error {
	result, appErr := c.AvailabilityService.GetSessions(ctx.Request().Context(), ctx.Param("creatorId"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// SaveSettings handles PUT /creators/:creatorId/session-settings
func (c *AvailabilityController) SaveSettings(ctx echo.Context) error {
	var req dto.SessionSettingsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.AvailabilityService.SaveSettings(ctx.Request().Context(), ctx.Param("creatorId"), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Session settings saved")
}
