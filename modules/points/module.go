package points

import (
	"creator-ledger/core/cache"
	"creator-ledger/core/database"
	"creator-ledger/core/policy"
	"creator-ledger/modules/points/controller"
	"creator-ledger/modules/points/repository"
	"creator-ledger/modules/points/router"
	"creator-ledger/modules/points/service"
	"creator-ledger/modules/points/tasks"

	"github.com/labstack/echo/v4"
)

type Module struct {
	Repo    repository.PointsRepositoryInterface
	Service service.PointsServiceInterface
	Tasks   *tasks.Handler
}

func Init(v1 *echo.Group, db database.IDatabase, store cache.Store, p policy.Policy) *Module {
	repo := repository.NewPointsRepository(db)
	svc := service.NewPointsService(repo, store, p)
	ctrl := controller.NewPointsController(svc)
	router.NewPointsRouter(ctrl).Setup(v1)

	return &Module{Repo: repo, Service: svc, Tasks: tasks.NewHandler(svc)}
}
