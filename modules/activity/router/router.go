package router

import (
	"creator-ledger/modules/activity/controller"

	"github.com/labstack/echo/v4"
)

type ActivityRouter struct {
	Controller *controller.ActivityController
}

func NewActivityRouter(ctrl *controller.ActivityController) *ActivityRouter {
	return &ActivityRouter{Controller: ctrl}
}

func (r *ActivityRouter) Setup(v1 *echo.Group) {
	v1.GET("/activity/:userAddr", r.Controller.GetFeed)
}
