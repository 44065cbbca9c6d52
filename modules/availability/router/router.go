package router

import (
	"creator-ledger/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

type AvailabilityRouter struct {
	Controller *controller.AvailabilityController
}

func NewAvailabilityRouter(ctrl *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{Controller: ctrl}
}

func (r *AvailabilityRouter) Setup(v1 *echo.Group) {
	creators := v1.Group("/creators/:creatorId")
	creators.GET("/sessions", r.Controller.GetSessions)
	creators.PUT("/availability", r.Controller.SubmitSchedule)
	creators.PUT("/session-settings", r.Controller.SaveSettings)
}
