package controller

import (
	"creator-ledger/core/controller"
	"creator-ledger/core/errors"
	"creator-ledger/core/params"
	"creator-ledger/core/utils"
	"creator-ledger/modules/notification/dto"
	"creator-ledger/modules/notification/service"

	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	service *service.NotificationService
	controller.BaseController
}

func NewNotificationController(service *service.NotificationService) *NotificationController {
	return &NotificationController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

func (c *NotificationController) userAddr(ctx echo.Context) (string, error) {
	addr := ctx.Param("userAddr")
	if !utils.IsWalletAddress(addr) {
		return "", c.BadRequest(errors.ErrInvalidInput, "user address must be 40 hex characters")
	}
	return addr, nil
}

// GetMyNotifications handles GET /notifications/:userAddr
func (c *NotificationController) GetMyNotifications(ctx echo.Context) error {
	addr, err := c.userAddr(ctx)
	if err != nil {
		return err
	}

	queryParams := params.NewQueryParams(ctx)
	result, getErr := c.service.GetMyNotifications(ctx.Request().Context(), addr, *queryParams)
	if getErr != nil {
		return c.InternalServerError(errors.ErrGetFailed, "Failed to get notifications")
	}

	return c.SuccessResponse(ctx, result, "Notifications retrieved successfully")
}

// MarkAsRead handles PUT /notifications/:userAddr/mark-read
func (c *NotificationController) MarkAsRead(ctx echo.Context) error {
	addr, err := c.userAddr(ctx)
	if err != nil {
		return err
	}

	req := new(dto.MarkAsReadRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	if err := c.service.MarkAsRead(ctx.Request().Context(), addr, req.IDs); err != nil {
		return c.InternalServerError(errors.ErrUpdateFailed, "Failed to mark as read")
	}

	return c.SuccessResponse(ctx, nil, "Marked as read successfully")
}

// MarkAllAsRead handles PUT /notifications/:userAddr/mark-all-read
func (c *NotificationController) MarkAllAsRead(ctx echo.Context) error {
	addr, err := c.userAddr(ctx)
	if err != nil {
		return err
	}

	if err := c.service.MarkAllAsRead(ctx.Request().Context(), addr); err != nil {
		return c.InternalServerError(errors.ErrUpdateFailed, "Failed to mark all as read")
	}

	return c.SuccessResponse(ctx, nil, "Marked all as read successfully")
}

// CountUnread handles GET /notifications/:userAddr/unread-count
func (c *NotificationController) CountUnread(ctx echo.Context) error {
	addr, err := c.userAddr(ctx)
	if err != nil {
		return err
	}

	count, err := c.service.CountUnread(ctx.Request().Context(), addr)
	if err != nil {
		return c.InternalServerError(errors.ErrGetFailed, "Failed to count unread")
	}

	return c.SuccessResponse(ctx, map[string]int{"count": count}, "Unread count retrieved")
}
