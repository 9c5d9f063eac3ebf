package adminapi

import (
	"github.com/labstack/echo/v4"

	"github.com/govindalabs/dairypos/internal/webserver"
)

func registerNotificationRoutes() {
	webserver.ApiGET("/pos/notifications/latest", latestNotification)
}

func latestNotification(c echo.Context) error {
	return ok(c, getApp(c).Notify().Latest())
}
