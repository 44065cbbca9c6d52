package router

import (
	"creator-ledger/modules/commerce/controller"

	"github.com/labstack/echo/v4"
)

type CommerceRouter struct {
	Controller *controller.CommerceController
}

func NewCommerceRouter(ctrl *controller.CommerceController) *CommerceRouter {
	return &CommerceRouter{Controller: ctrl}
}

func (r *CommerceRouter) Setup(v1 *echo.Group) {
	v1.POST("/videos", r.Controller.RegisterVideo)
	v1.POST("/purchases", r.Controller.RecordPurchase)

	campaigns := v1.Group("/campaigns")
	campaigns.POST("", r.Controller.CreateCampaign)
	campaigns.POST("/:id/clicks", r.Controller.RecordClick)
}
