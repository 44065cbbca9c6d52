package controller

import (
	"creator-ledger/core/controller"
	"creator-ledger/core/errors"
	"creator-ledger/modules/booking/dto"
	"creator-ledger/modules/booking/service"

	"github.com/labstack/echo/v4"
)

type BookingController struct {
	controller.BaseController
	BookingService service.BookingServiceInterface
}

func NewBookingController(svc service.BookingServiceInterface) *BookingController {
	return &BookingController{
		BaseController: controller.NewBaseController(),
		BookingService: svc,
	}
}

// CreateBooking handles POST /bookings
func (c *BookingController) CreateBooking(ctx echo.Context) error {
	var req dto.CreateBookingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.BookingService.CreateBooking(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Booking created")
}

// GetBooking handles GET /bookings/:id
func (c *BookingController) GetBooking(ctx echo.Context) error {
	result, appErr := c.BookingService.GetBooking(ctx.Request().Context(), ctx.Param("id"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// CompleteBooking handles POST /internal/bookings/:id/complete
func (c *BookingController) CompleteBooking(ctx echo.Context) error {
	result, appErr := c.BookingService.CompleteBooking(ctx.Request().Context(), ctx.Param("id"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Booking completed")
}
