package earnings

import (
	"creator-ledger/core/database"
	"creator-ledger/core/policy"
	"creator-ledger/modules/earnings/controller"
	"creator-ledger/modules/earnings/repository"
	"creator-ledger/modules/earnings/router"
	"creator-ledger/modules/earnings/service"

	"github.com/labstack/echo/v4"
)

func Init(v1 *echo.Group, db database.IDatabase, p policy.Policy) *service.EarningsService {
	repo := repository.NewEarningsRepository(db)
	svc := service.NewEarningsService(repo, p)
	ctrl := controller.NewEarningsController(svc)
	router.NewEarningsRouter(ctrl).Setup(v1)
	return svc
}
