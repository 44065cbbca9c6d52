package activity

import (
	"time"

	"creator-ledger/core/cache"
	"creator-ledger/core/database"
	"creator-ledger/core/policy"
	"creator-ledger/modules/activity/controller"
	"creator-ledger/modules/activity/repository"
	"creator-ledger/modules/activity/router"
	"creator-ledger/modules/activity/service"

	"github.com/labstack/echo/v4"
)

func Init(
	v1 *echo.Group,
	db database.IDatabase,
	progress service.ProgressSource,
	bookings service.BookingSource,
	store cache.Store,
	p policy.Policy,
	ttl time.Duration,
) {
	repo := repository.NewActivityRepository(db)
	svc := service.NewActivityService(repo, progress, bookings, store, p, ttl)
	ctrl := controller.NewActivityController(svc)
	router.NewActivityRouter(ctrl).Setup(v1)
}
