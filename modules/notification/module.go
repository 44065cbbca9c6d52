package notification

import (
	"creator-ledger/core/database"
	"creator-ledger/modules/notification/controller"
	"creator-ledger/modules/notification/repository"
	"creator-ledger/modules/notification/router"
	"creator-ledger/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(v1 *echo.Group, db database.IDatabase) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Register(v1)

	return svc
}
