package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/govindalabs/dairypos/internal/pos"
	"github.com/govindalabs/dairypos/internal/webserver"
)

type cartAddPayload struct {
	ProductID int64  `json:"product_id,string"`
	Qty       int    `json:"qty"`
	QtyText   string `json:"qty_text"`
}

type cartUpdatePayload struct {
	ProductID int64 `json:"product_id,string"`
	Qty       int   `json:"qty"`
}

func registerCartRoutes() {
	webserver.ApiGET("/pos/cart", getCart)
	webserver.ApiPOST("/pos/cart/items", addCartItem)
	webserver.ApiPUT("/pos/cart/items", updateCartItem)
	webserver.ApiDELETE("/pos/cart/items", removeCartItem)
	webserver.ApiDELETE("/pos/cart", clearCart)
	webserver.ApiPOST("/pos/checkout", doCheckout)
}

func cartView(cart pos.Cart) map[string]interface{} {
	if cart == nil {
		cart = pos.Cart{}
	}
	return map[string]interface{}{
		"lines":    cart,
		"subtotal": cart.Subtotal(),
	}
}

func getCart(c echo.Context) error {
	return ok(c, cartView(carts.Get(currentOwnerID(c))))
}

// addCartItem adds a product to the active cart. Unit-priced products take
// the smart-quantity text ("250gm", "1.5l", a bare number) and reject
// anything unparseable; fixed-price products take a repeat count.
func addCartItem(c echo.Context) error {
	owner := currentOwnerID(c)
	var payload cartAddPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}

	p, err := products.GetByID(c.Request().Context(), owner, payload.ProductID)
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	if p.Qty <= 0 {
		return fail(c, http.StatusBadRequest, "OUT_OF_STOCK", "Product is out of stock", nil)
	}

	cart := carts.Get(owner)
	if p.UnitBased() {
		pq := pos.ParseSmartQuantity(payload.QtyText, p.UnitType)
		cart, err = cart.AddUnit(*p, pq)
		if err != nil {
			if errors.Is(err, pos.ErrInvalidQuantity) {
				return fail(c, http.StatusBadRequest, "INVALID_QUANTITY", "Enter a quantity like '250gm', '1.5kg' or '500ml'", nil)
			}
			return fail(c, http.StatusInternalServerError, "CART_ERROR", "Failed to add item", err.Error())
		}
	} else {
		qty := payload.Qty
		if qty < 1 {
			qty = 1
		}
		cart = cart.AddFixed(*p, qty)
	}

	carts.Put(owner, cart)
	return ok(c, cartView(cart))
}

func updateCartItem(c echo.Context) error {
	owner := currentOwnerID(c)
	var payload cartUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}
	cart := carts.Get(owner).UpdateQty(payload.ProductID, payload.Qty)
	carts.Put(owner, cart)
	return ok(c, cartView(cart))
}

func removeCartItem(c echo.Context) error {
	owner := currentOwnerID(c)
	productID := cast.ToInt64(c.QueryParam("product_id"))
	purchaseUnit := strings.TrimSpace(c.QueryParam("purchase_unit"))
	cart := carts.Get(owner).Remove(productID, purchaseUnit)
	carts.Put(owner, cart)
	return ok(c, cartView(cart))
}

func clearCart(c echo.Context) error {
	owner := currentOwnerID(c)
	carts.Clear(owner)
	return ok(c, cartView(nil))
}

func doCheckout(c echo.Context) error {
	owner := currentOwnerID(c)
	var input pos.CheckoutInput
	if err := c.Bind(&input); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse checkout form", err.Error())
	}

	result, err := checkout.Checkout(c.Request().Context(), owner, input)
	if err != nil {
		if errors.Is(err, pos.ErrEmptyCart) {
			return fail(c, http.StatusBadRequest, "EMPTY_CART", "Cart is empty", nil)
		}
		return fail(c, http.StatusInternalServerError, "CHECKOUT_ERROR", "Checkout failed", err.Error())
	}
	return ok(c, result)
}
