package booking

import (
	"time"

	"creator-ledger/core/config"
	"creator-ledger/core/database"
	"creator-ledger/core/logger"
	"creator-ledger/core/middleware"
	"creator-ledger/core/policy"
	"creator-ledger/modules/booking/controller"
	"creator-ledger/modules/booking/repository"
	"creator-ledger/modules/booking/router"
	"creator-ledger/modules/booking/service"
	"creator-ledger/modules/booking/settlement"

	"github.com/labstack/echo/v4"
)

// Init wires the booking coordinator. The returned repository feeds earnings and activity.
func Init(
	v1 *echo.Group,
	db database.IDatabase,
	cfg *config.Config,
	mw *middleware.Middleware,
	p policy.Policy,
	settings service.SettingsReader,
	notifier service.Notifier,
) repository.BookingRepositoryInterface {
	loc, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		logger.Warn("Booking:Init:LoadLocation", "timezone", cfg.Server.Timezone, "error", err)
		loc = time.UTC
	}

	repo := repository.NewBookingRepository(db)
	settler := settlement.NewClient(cfg.Settlement)
	svc := service.NewBookingService(repo, settings, settler, notifier, p, func() time.Time {
		return time.Now().In(loc)
	})
	ctrl := controller.NewBookingController(svc)
	router.NewBookingRouter(ctrl).Setup(v1, mw)
	return repo
}
