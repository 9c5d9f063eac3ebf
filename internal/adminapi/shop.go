package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/govindalabs/dairypos/internal/webserver"
)

type shopPayload struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Addr  string `json:"addr"`
}

func registerShopRoutes() {
	webserver.ApiGET("/pos/shop", getShop)
	webserver.ApiPUT("/pos/shop", updateShop)
}

func getShop(c echo.Context) error {
	shop, err := shops.Get(c.Request().Context(), currentOwnerID(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load shop profile", err.Error())
	}
	return ok(c, shop)
}

func updateShop(c echo.Context) error {
	owner := currentOwnerID(c)
	var payload shopPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse shop profile", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Shop name is required", nil)
	}

	shop, err := shops.Get(c.Request().Context(), owner)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load shop profile", err.Error())
	}
	shop.Name = payload.Name
	shop.Phone = strings.TrimSpace(payload.Phone)
	shop.Addr = strings.TrimSpace(payload.Addr)

	if err := shops.Update(c.Request().Context(), shop); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update shop profile", err.Error())
	}
	return ok(c, shop)
}
