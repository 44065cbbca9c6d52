package router

import (
	"creator-ledger/modules/earnings/controller"

	"github.com/labstack/echo/v4"
)

type EarningsRouter struct {
	Controller *controller.EarningsController
}

func NewEarningsRouter(ctrl *controller.EarningsController) *EarningsRouter {
	return &EarningsRouter{Controller: ctrl}
}

func (r *EarningsRouter) Setup(v1 *echo.Group) {
	creators := v1.Group("/creators/:creatorAddr")
	creators.GET("/earnings", r.Controller.GetEarnings)
	creators.GET("/studio", r.Controller.GetStudio)
}
