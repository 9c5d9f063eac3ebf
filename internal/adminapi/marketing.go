package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/govindalabs/dairypos/internal/pos"
	"github.com/govindalabs/dairypos/internal/webserver"
)

func registerMarketingRoutes() {
	webserver.ApiGET("/pos/marketing/recipients", marketingRecipients)
}

type marketingRecipient struct {
	ID     int64  `json:"id,string"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	WaLink string `json:"wa_link"`
}

// marketingRecipients resolves a segment (the "general" opt-in flag or a
// religion tag) to the customers it reaches, each with a prefilled wa.me
// link for the given message. Sending stays manual, one tap per customer.
func marketingRecipients(c echo.Context) error {
	owner := currentOwnerID(c)
	segment := strings.TrimSpace(c.QueryParam("segment"))
	if segment == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Segment is required", nil)
	}
	message := c.QueryParam("message")

	all, err := customers.List(c.Request().Context(), owner)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query customers", err.Error())
	}

	matched := pos.MarketingRecipients(all, segment)
	out := make([]marketingRecipient, 0, len(matched))
	for _, cust := range matched {
		out = append(out, marketingRecipient{
			ID:     cust.ID,
			Name:   cust.Name,
			Phone:  cust.Phone,
			WaLink: pos.WaLink(cust.Phone, message),
		})
	}
	return ok(c, map[string]interface{}{
		"segment":    segment,
		"count":      len(out),
		"recipients": out,
	})
}
