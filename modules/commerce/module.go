package commerce

import (
	"creator-ledger/core/database"
	"creator-ledger/core/queue"
	"creator-ledger/modules/commerce/controller"
	"creator-ledger/modules/commerce/repository"
	"creator-ledger/modules/commerce/router"
	"creator-ledger/modules/commerce/service"

	"github.com/labstack/echo/v4"
)

func Init(v1 *echo.Group, db database.IDatabase, q queue.Enqueuer) {
	repo := repository.NewCommerceRepository(db)
	svc := service.NewCommerceService(repo, q)
	ctrl := controller.NewCommerceController(svc)
	router.NewCommerceRouter(ctrl).Setup(v1)
}
