package router

import (
	"creator-ledger/core/constants"
	"creator-ledger/core/middleware"
	"creator-ledger/modules/booking/controller"

	"github.com/labstack/echo/v4"
)

type BookingRouter struct {
	Controller *controller.BookingController
}

func NewBookingRouter(ctrl *controller.BookingController) *BookingRouter {
	return &BookingRouter{Controller: ctrl}
}

func (r *BookingRouter) Setup(v1 *echo.Group, mw *middleware.Middleware) {
	bookings := v1.Group("/bookings")
	bookings.POST("", r.Controller.CreateBooking)
	bookings.GET("/:id", r.Controller.GetBooking)

	internal := v1.Group("/internal", mw.ServiceAuth(constants.ScopeBookingComplete))
	internal.POST("/bookings/:id/complete", r.Controller.CompleteBooking)
}
