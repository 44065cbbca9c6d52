package availability

import (
	"creator-ledger/core/database"
	"creator-ledger/core/policy"
	"creator-ledger/modules/availability/controller"
	"creator-ledger/modules/availability/repository"
	"creator-ledger/modules/availability/router"
	"creator-ledger/modules/availability/service"

	"github.com/labstack/echo/v4"
)

// Init registers the availability routes and returns the repository so the booking module
// can read session settings.
func Init(v1 *echo.Group, db database.IDatabase, p policy.Policy) repository.AvailabilityRepositoryInterface {
	repo := repository.NewAvailabilityRepository(db)
	svc := service.NewAvailabilityService(repo, p)
	ctrl := controller.NewAvailabilityController(svc)
	router.NewAvailabilityRouter(ctrl).Setup(v1)
	return repo
}
