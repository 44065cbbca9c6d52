package router

import (
	"creator-ledger/modules/points/controller"

	"github.com/labstack/echo/v4"
)

type PointsRouter struct {
	Controller *controller.PointsController
}

func NewPointsRouter(ctrl *controller.PointsController) *PointsRouter {
	return &PointsRouter{Controller: ctrl}
}

func (r *PointsRouter) Setup(v1 *echo.Group) {
	points := v1.Group("/points")
	points.POST("/task", r.Controller.CreditTask)
	points.POST("/share", r.Controller.CreditShare)
	points.POST("/purchase", r.Controller.CreditPurchase)
	points.POST("/campaign", r.Controller.CreditCampaign)
	points.GET("/:userAddr", r.Controller.GetSummary)

	v1.GET("/leaderboard", r.Controller.Leaderboard)
}
